package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriStatusPartitionsEveryOutcome(t *testing.T) {
	cases := []struct {
		status PassStatus
		want   string
	}{
		{StatusPassed, TriPassed},
		{StatusFailed, TriFailed},
		{StatusInitial, TriNeither},
		{PassStatus("pending_review"), TriNeither},
		{PassStatus(""), TriNeither},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.status.TriStatus(), "status %q", tc.status)
	}
}
