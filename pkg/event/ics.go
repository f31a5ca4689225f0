package event

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ICS renders the events of a lab overlapping [start, end] as an iCalendar
// feed, so the lab calendar can be subscribed to from any calendar client.
func (s Service) ICS(ctx context.Context, labID uint, start, end time.Time) (string, error) {
	events, err := s.FindAll(ctx, labID, start, end)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Labchat//Calendar//EN")
	cal.SetXWRCalName(fmt.Sprintf("Labchat lab %d", labID))

	for _, event := range events {
		entry := cal.AddEvent(fmt.Sprintf("event-%d@labchat", event.ID))
		entry.SetCreatedTime(event.CreatedAt)
		entry.SetDtStampTime(event.UpdatedAt)
		entry.SetStartAt(event.StartDate)
		entry.SetEndAt(event.EndDate)
		entry.SetSummary(event.Title)
		if event.Description != "" {
			entry.SetDescription(event.Description)
		}
		if event.Instrument != nil && event.Instrument.Name != nil {
			entry.SetLocation(*event.Instrument.Name)
		}
		if event.Status != nil {
			entry.SetProperty(ics.ComponentPropertyCategories, event.Status.Name)
		}
	}

	return cal.Serialize(), nil
}
