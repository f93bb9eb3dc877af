package model

import "time"

// Date and clock layouts used across persisted records. Dates are stored as
// plain calendar strings so backups round-trip byte-for-byte.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a stored calendar date in the local timezone.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a timestamp as a stored calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses an HH:MM string.
func ParseClock(s string) (hour, minute int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

// CombineDateTime places an HH:MM clock value onto a date. An empty or
// malformed clock leaves the date at midnight.
func CombineDateTime(date time.Time, clock string) time.Time {
	h, m, ok := ParseClock(clock)
	if !ok {
		h, m = 0, 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

// Midnight truncates a timestamp to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
