package models

import "time"

// DateLayout is the calendar date format used in requests, console input and
// date-only columns.
const DateLayout = "2006-01-02"

// DateOnly truncates t to its calendar date at UTC midnight. Date rules compare
// calendar days only, so every date is normalized through here first.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
