// Package calendar holds the pure event materialization pipeline: date-range
// resolution, recurrence expansion, facet filtering, single/multi-day
// partitioning and month-grid bucketing. Nothing in here touches the network
// or the database.
package calendar

import (
	"fmt"
	"time"
)

// View is the calendar display granularity driving date-range resolution.
type View string

const (
	ViewDay    View = "day"
	ViewWeek   View = "week"
	ViewMonth  View = "month"
	ViewYear   View = "year"
	ViewAgenda View = "agenda"
)

// Range is a closed [Start, End] interval covering full calendar units.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveRange computes the interval covering the full calendar unit
// containing reference. The agenda view reuses month granularity. An
// unrecognized view is a programming error, not user input; the HTTP layer
// validates view values before they get here.
func ResolveRange(reference time.Time, view View) (Range, error) {
	switch view {
	case ViewDay:
		return Range{Start: startOfDay(reference), End: endOfDay(reference)}, nil
	case ViewWeek:
		return Range{Start: startOfWeek(reference), End: endOfWeek(reference)}, nil
	case ViewMonth, ViewAgenda:
		return Range{Start: startOfMonth(reference), End: endOfMonth(reference)}, nil
	case ViewYear:
		return Range{Start: startOfYear(reference), End: endOfYear(reference)}, nil
	default:
		return Range{}, fmt.Errorf("unrecognized calendar view %q", view)
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Weeks start on Sunday.
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func endOfWeek(t time.Time) time.Time {
	return startOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

func startOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func endOfYear(t time.Time) time.Time {
	return startOfYear(t).AddDate(1, 0, 0).Add(-time.Nanosecond)
}
