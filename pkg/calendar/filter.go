package calendar

import (
	"time"

	"github.com/labchat/labchat-server/pkg/model"
)

// Filter is the set of active calendar facets. A nil field means "all" for
// that dimension; dimensions combine with AND.
type Filter struct {
	MemberID *uint
	TypeID   *uint
	// InstrumentID is ignored when NoInstrument is set.
	InstrumentID *uint
	// NoInstrument matches only events without an instrument.
	NoInstrument bool
	StatusID     *uint
	// Day restricts events to ones overlapping that calendar day. Only the day
	// view sets it; for wider views the fetch is already scoped to the visible
	// range.
	Day *time.Time
}

// Apply returns the events satisfying every active facet. It is a pure
// function of its inputs and never mutates events.
func (f Filter) Apply(events []model.Event) []model.Event {
	filtered := make([]model.Event, 0, len(events))
	for _, event := range events {
		if f.matches(event) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

func (f Filter) matches(event model.Event) bool {
	if !f.matchesMember(event) {
		return false
	}
	if f.TypeID != nil && (event.TypeID == nil || *event.TypeID != *f.TypeID) {
		return false
	}
	if !f.matchesInstrument(event) {
		return false
	}
	if f.StatusID != nil && (event.StatusID == nil || *event.StatusID != *f.StatusID) {
		return false
	}
	if f.Day != nil && !overlapsDay(event, *f.Day) {
		return false
	}
	return true
}

// matchesMember keeps the assignment-dependent assignee rule the UI has
// always had: when an event has no assignments the assigner is the one being
// filtered on; as soon as assignments exist only they count and the assigner
// no longer matches.
func (f Filter) matchesMember(event model.Event) bool {
	if f.MemberID == nil {
		return true
	}
	if len(event.Assignments) == 0 {
		return event.AssignerID == *f.MemberID
	}
	for _, assignment := range event.Assignments {
		if assignment.MemberID == *f.MemberID {
			return true
		}
	}
	return false
}

func (f Filter) matchesInstrument(event model.Event) bool {
	if f.NoInstrument {
		return event.InstrumentID == nil
	}
	if f.InstrumentID == nil {
		return true
	}
	return event.InstrumentID != nil && *event.InstrumentID == *f.InstrumentID
}

func overlapsDay(event model.Event, day time.Time) bool {
	dayStart := startOfDay(day)
	dayEnd := endOfDay(day)
	return !event.StartDate.After(dayEnd) && !event.EndDate.Before(dayStart)
}
