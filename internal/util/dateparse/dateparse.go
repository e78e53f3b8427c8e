// Package dateparse reads the date and timestamp shapes the API emits.
package dateparse

import (
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse tries each known layout. Date-only values are placed in loc.
func Parse(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Day truncates t to midnight in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween counts whole calendar days from a to b in loc; it is negative
// when b is before a.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	da, db := Day(a, loc), Day(b, loc)
	// Round absorbs DST shifts of an hour.
	return int(db.Sub(da).Round(24*time.Hour) / (24 * time.Hour))
}
