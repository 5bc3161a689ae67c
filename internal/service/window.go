package service

import (
	"time"

	"github.com/tabsera/recitation-report/internal/models"
)

// ResolveWindow computes the UTC day window daysAgo days before now in loc.
// The window covers one full calendar day of the report timezone, so its UTC
// bounds shift by the zone offset (a UTC+3 zone starts at 21:00 of the
// previous UTC day). daysAgo of zero yields today's window.
func ResolveWindow(now time.Time, daysAgo int, loc *time.Location) models.ReportWindow {
	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -daysAgo)

	return models.ReportWindow{
		Day:   day,
		Start: day.UTC(),
		End:   day.AddDate(0, 0, 1).UTC(),
	}
}
