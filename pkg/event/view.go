package event

import (
	"context"
	"time"

	"github.com/labchat/labchat-server/internal/errdef"
	"github.com/labchat/labchat-server/pkg/calendar"
	"github.com/labchat/labchat-server/pkg/model"
)

// ViewOptions selects what a calendar render covers: the reference date, the
// display granularity and the active facet filters.
type ViewOptions struct {
	Date   time.Time
	View   calendar.View
	Filter calendar.Filter
}

// CalendarPage is one ready-to-render calendar response. Days is only set for
// the month view, Agenda only for the agenda view; the flat lists serve the
// remaining views.
type CalendarPage struct {
	View            calendar.View                 `json:"view"`
	Range           calendar.Range                `json:"range"`
	Events          []model.Event                 `json:"events"`
	SingleDayEvents []model.Event                 `json:"singleDayEvents"`
	MultiDayEvents  []model.Event                 `json:"multiDayEvents"`
	Days            map[string]calendar.DayBucket `json:"days,omitempty"`
	Agenda          []calendar.DayGroup           `json:"agenda,omitempty"`
}

// CalendarView runs the materialization pipeline for one lab: resolve the
// visible range, fetch, filter, partition and, depending on the view, bucket
// into the month grid or group into agenda days.
func (s Service) CalendarView(ctx context.Context, labID uint, options ViewOptions) (*CalendarPage, error) {
	rng, err := calendar.ResolveRange(options.Date, options.View)
	if err != nil {
		return nil, errdef.NewBadRequest("%v", err)
	}

	events, err := s.repository.findAllInRange(ctx, labID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	filter := options.Filter
	if options.View == calendar.ViewDay {
		day := options.Date
		filter.Day = &day
	}
	filtered := filter.Apply(resolveColors(events))

	singleDay, multiDay := calendar.Partition(filtered)

	page := &CalendarPage{
		View:            options.View,
		Range:           rng,
		Events:          filtered,
		SingleDayEvents: singleDay,
		MultiDayEvents:  multiDay,
	}
	switch options.View {
	case calendar.ViewMonth:
		page.Days = calendar.BucketByDay(singleDay, multiDay, options.Date)
	case calendar.ViewAgenda:
		page.Agenda = calendar.GroupByDay(filtered, rng)
	}
	return page, nil
}
