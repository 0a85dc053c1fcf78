// Package timeframe resolves reporting period keywords (today, yesterday,
// this_week, this_month, this_year) into concrete date ranges and classifies
// timestamps into exactly one of those buckets relative to "now".
package timeframe

import (
	"fmt"
	"strings"
	"time"

	"moneta/internal/dates"
	apperrors "moneta/internal/errors"
)

// Keyword identifies one reporting period.
type Keyword string

const (
	Today     Keyword = "today"
	Yesterday Keyword = "yesterday"
	ThisWeek  Keyword = "this_week"
	ThisMonth Keyword = "this_month"
	ThisYear  Keyword = "this_year"
)

// Order is the canonical bucket order, most recent first. Bucket
// classification and report assembly both iterate in this order.
var Order = []Keyword{Today, Yesterday, ThisWeek, ThisMonth, ThisYear}

// Parse validates a timeframe keyword, case-insensitively.
func Parse(value string) (Keyword, error) {
	k := Keyword(strings.ToLower(value))
	for _, known := range Order {
		if k == known {
			return k, nil
		}
	}
	valid := make([]string, len(Order))
	for i, known := range Order {
		valid[i] = string(known)
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidTimeframe,
		fmt.Sprintf("Invalid timeframe '%s'. Expected one of %s", value, strings.Join(valid, ", ")))
}

// Range resolves a keyword into an inclusive [start, end] interval anchored
// to now. Weeks start on Monday; month and year cover their full calendar
// span.
func Range(k Keyword, now time.Time) (time.Time, time.Time, error) {
	todayStart := dates.StartOfDay(now)

	switch k {
	case Today:
		return todayStart, dates.EndOfDay(now), nil
	case Yesterday:
		day := todayStart.AddDate(0, 0, -1)
		return day, dates.EndOfDay(day), nil
	case ThisWeek:
		weekStart := todayStart.AddDate(0, 0, -daysSinceMonday(todayStart))
		return weekStart, dates.EndOfDay(weekStart.AddDate(0, 0, 6)), nil
	case ThisMonth:
		monthStart := time.Date(todayStart.Year(), todayStart.Month(), 1, 0, 0, 0, 0, todayStart.Location())
		monthEnd := dates.EndOfDay(monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1))
		return monthStart, monthEnd, nil
	case ThisYear:
		yearStart := time.Date(todayStart.Year(), time.January, 1, 0, 0, 0, 0, todayStart.Location())
		yearEnd := dates.EndOfDay(yearStart.AddDate(1, 0, 0).AddDate(0, 0, -1))
		return yearStart, yearEnd, nil
	}

	_, err := Parse(string(k))
	return time.Time{}, time.Time{}, err
}

// AnchorSet holds the bucket boundary instants for a fixed evaluation time.
type AnchorSet struct {
	TodayStart     time.Time
	YesterdayStart time.Time
	WeekStart      time.Time
	MonthStart     time.Time
	YearStart      time.Time
}

// Anchors computes the bucket boundaries relative to now.
func Anchors(now time.Time) AnchorSet {
	todayStart := dates.StartOfDay(now)
	return AnchorSet{
		TodayStart:     todayStart,
		YesterdayStart: todayStart.AddDate(0, 0, -1),
		WeekStart:      todayStart.AddDate(0, 0, -daysSinceMonday(todayStart)),
		MonthStart:     time.Date(todayStart.Year(), todayStart.Month(), 1, 0, 0, 0, 0, todayStart.Location()),
		YearStart:      time.Date(todayStart.Year(), time.January, 1, 0, 0, 0, 0, todayStart.Location()),
	}
}

// Bucket classifies a timestamp into the first bucket whose start boundary it
// does not precede. Timestamps older than the start of the current year map
// to no bucket and are excluded from reports.
func (a AnchorSet) Bucket(ts time.Time) (Keyword, bool) {
	switch {
	case !ts.Before(a.TodayStart):
		return Today, true
	case !ts.Before(a.YesterdayStart):
		return Yesterday, true
	case !ts.Before(a.WeekStart):
		return ThisWeek, true
	case !ts.Before(a.MonthStart):
		return ThisMonth, true
	case !ts.Before(a.YearStart):
		return ThisYear, true
	}
	return "", false
}

// daysSinceMonday maps Go's Sunday-based weekday to a Monday=0 offset.
func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
