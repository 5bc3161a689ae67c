package models

import "time"

// ReportWindow is a half-open UTC interval covering one full calendar day in
// the report timezone. Start is inclusive, End exclusive.
type ReportWindow struct {
	// Day is midnight of the target day in the report timezone. It is the
	// single date source for both the query window and output filenames.
	Day   time.Time
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w ReportWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// FileDate renders the target day as DD-MM-YYYY for output filenames.
func (w ReportWindow) FileDate() string {
	return w.Day.Format("02-01-2006")
}
