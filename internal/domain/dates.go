package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire format of a booking date.
const DateLayout = "2006-01-02"

// CalendarDay returns the calendar day of t in loc as UTC midnight,
// which is how booking dates are stored.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts "YYYY-MM-DD" or an RFC3339 timestamp and keeps only its
// calendar date as written.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// FormatDay renders a stored booking date.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
