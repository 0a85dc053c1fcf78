// Package dates normalizes externally supplied timestamps and date ranges.
//
// Timestamps that arrive without an explicit zone (bare dates, zoneless
// strings) are read as UTC here, in one place, rather than ad hoc at each
// call site.
package dates

import (
	"fmt"
	"time"
)

// StartOfDay returns 00:00:00.000000 of t's calendar day in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999999 of t's calendar day in t's own location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999000, t.Location())
}

// NormalizeRange snaps an optional start to the beginning of its day and an
// optional end to the end of its day. Either bound may be nil (open-ended);
// nil in, nil out.
func NormalizeRange(start, end *time.Time) (*time.Time, *time.Time) {
	var normStart, normEnd *time.Time
	if start != nil {
		s := StartOfDay(*start)
		normStart = &s
	}
	if end != nil {
		e := EndOfDay(*end)
		normEnd = &e
	}
	return normStart, normEnd
}

// ParseFlexible parses a timestamp accepting RFC3339, a zoneless
// YYYY-MM-DDTHH:MM:SS, or a bare YYYY-MM-DD date. Inputs without a zone are
// read as UTC.
func ParseFlexible(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use RFC3339 or YYYY-MM-DD", value)
}
