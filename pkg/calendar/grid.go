package calendar

import (
	"time"

	"github.com/labchat/labchat-server/pkg/model"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const dayKeyFormat = "2006-01-02"

// DayKey is the bucket key for t's calendar day.
func DayKey(t time.Time) string {
	return t.Format(dayKeyFormat)
}

// DayBucket holds what a single grid cell renders: the single-day events
// starting on that day and the multi-day events whose span covers it.
type DayBucket struct {
	Events         []model.Event `json:"events"`
	MultiDayEvents []model.Event `json:"multiDayEvents"`
}

// MonthGrid is the visible range of a month view: full weeks covering the
// month, including the leading and trailing days of adjacent months.
func MonthGrid(month time.Time) Range {
	return Range{
		Start: startOfWeek(startOfMonth(month)),
		End:   endOfWeek(endOfMonth(month)),
	}
}

// BucketByDay assigns every event to each visible grid day it touches.
// Multi-day spans are clamped to the grid before walking, so even a
// multi-year event contributes at most one entry per visible day rather than
// one per day of its whole span.
func BucketByDay(singleDay, multiDay []model.Event, month time.Time) map[string]DayBucket {
	grid := MonthGrid(month)
	buckets := make(map[string]DayBucket)

	for _, event := range singleDay {
		if event.StartDate.Before(grid.Start) || event.StartDate.After(grid.End) {
			continue
		}
		key := DayKey(event.StartDate)
		bucket := buckets[key]
		bucket.Events = append(bucket.Events, event)
		buckets[key] = bucket
	}

	for _, event := range multiDay {
		from := startOfDay(event.StartDate)
		if from.Before(grid.Start) {
			from = grid.Start
		}
		to := startOfDay(event.EndDate)
		if to.After(grid.End) {
			to = startOfDay(grid.End)
		}
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			key := DayKey(day)
			bucket := buckets[key]
			bucket.MultiDayEvents = append(bucket.MultiDayEvents, event)
			buckets[key] = bucket
		}
	}

	return buckets
}

// CellSlots is how many events a month cell shows directly; anything beyond
// surfaces as a "+N more" count.
const CellSlots = 3

type Cell struct {
	Slots []model.Event `json:"slots"`
	More  int           `json:"more"`
}

// Layout fills the visible slots of a month cell, multi-day spans first and
// single-day events after, both in encounter order (first-come-first-slotted,
// no resorting).
func (b DayBucket) Layout() Cell {
	combined := make([]model.Event, 0, len(b.MultiDayEvents)+len(b.Events))
	combined = append(combined, b.MultiDayEvents...)
	combined = append(combined, b.Events...)
	if len(combined) <= CellSlots {
		return Cell{Slots: combined}
	}
	return Cell{Slots: combined[:CellSlots], More: len(combined) - CellSlots}
}

// DayGroup is one agenda entry: a calendar day and the events touching it.
type DayGroup struct {
	Day    time.Time     `json:"day"`
	Events []model.Event `json:"events"`
}

// GroupByDay arranges events for the agenda view: one group per calendar day
// that has events, ordered by day, events keeping fetch order within a group.
// Multi-day events appear under every day they span inside rng.
func GroupByDay(events []model.Event, rng Range) []DayGroup {
	grouped := make(map[string][]model.Event)
	for _, event := range events {
		from := startOfDay(event.StartDate)
		if from.Before(rng.Start) {
			from = startOfDay(rng.Start)
		}
		to := startOfDay(event.EndDate)
		if to.After(rng.End) {
			to = startOfDay(rng.End)
		}
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			key := DayKey(day)
			grouped[key] = append(grouped[key], event)
		}
	}

	// day keys sort chronologically as strings
	keys := maps.Keys(grouped)
	slices.Sort(keys)

	groups := make([]DayGroup, 0, len(keys))
	for _, key := range keys {
		day, err := time.ParseInLocation(dayKeyFormat, key, rng.Start.Location())
		if err != nil {
			continue
		}
		groups = append(groups, DayGroup{Day: day, Events: grouped[key]})
	}
	return groups
}
