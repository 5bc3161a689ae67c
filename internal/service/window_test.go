package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveWindowConvertsZoneMidnightToUTC(t *testing.T) {
	// UTC+3: the target day's midnight falls at 21:00 of the previous UTC day.
	loc := time.FixedZone("EAT", 3*60*60)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)

	window := ResolveWindow(now, 1, loc)

	assert.True(t, window.Start.Equal(time.Date(2024, 3, 8, 21, 0, 0, 0, time.UTC)), "start %v", window.Start)
	assert.True(t, window.End.Equal(time.Date(2024, 3, 9, 21, 0, 0, 0, time.UTC)), "end %v", window.End)
	assert.Equal(t, "09-03-2024", window.FileDate())
}

func TestResolveWindowZeroDaysAgoCoversToday(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)

	window := ResolveWindow(now, 0, loc)

	assert.True(t, window.Contains(now.UTC()))
	assert.Equal(t, "10-03-2024", window.FileDate())
}

func TestResolveWindowCrossesMonthBoundary(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	// Shortly after local midnight on the first of the month.
	now := time.Date(2024, 1, 1, 0, 30, 0, 0, loc)

	window := ResolveWindow(now, 1, loc)

	assert.Equal(t, "31-12-2023", window.FileDate())
	assert.True(t, window.Start.Equal(time.Date(2023, 12, 30, 21, 0, 0, 0, time.UTC)))
}

func TestResolveWindowAdjacentDaysAreContiguous(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)

	yesterday := ResolveWindow(now, 1, loc)
	today := ResolveWindow(now, 0, loc)

	assert.True(t, yesterday.End.Equal(today.Start))
	assert.False(t, yesterday.Contains(today.Start))
	assert.True(t, today.Contains(today.Start))
}

func TestResolveWindowNegativeOffsetZone(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 6, 15, 1, 0, 0, 0, loc)

	window := ResolveWindow(now, 1, loc)

	assert.True(t, window.Start.Equal(time.Date(2024, 6, 14, 5, 0, 0, 0, time.UTC)))
	assert.True(t, window.End.Equal(time.Date(2024, 6, 15, 5, 0, 0, 0, time.UTC)))
	assert.Equal(t, "14-06-2024", window.FileDate())
}
