// Package daykey derives the calendar-date bucket a location entry belongs
// to. The same timezone must be used on the write side and the read side,
// otherwise entries become invisible to the viewer for their actual day.
package daykey

import "time"

// Layout is the bucket key format, e.g. "2025-06-07".
const Layout = "2006-01-02"

// DayKey returns the local calendar date of the given epoch-millisecond
// instant in loc.
func DayKey(epochMillis int64, loc *time.Location) string {
	return time.UnixMilli(epochMillis).In(loc).Format(Layout)
}

// Valid reports whether s is a well-formed day key.
func Valid(s string) bool {
	if len(s) != len(Layout) {
		return false
	}
	_, err := time.Parse(Layout, s)
	return err == nil
}
