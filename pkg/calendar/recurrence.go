package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Frequency of a recurring event template.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

const (
	// MaxRepetitions bounds how many instances one template may generate.
	MaxRepetitions = 365

	// PreviewLimit caps how many occurrences a preview renders; the rest is
	// summarized as a count.
	PreviewLimit = 10
)

// Template is the transient draft an expansion consumes. Start and End carry
// both the calendar date and the time-of-day of the first instance.
type Template struct {
	Start time.Time
	End   time.Time
}

// Occurrence is one concrete start/end pair produced by an expansion.
type Occurrence struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Expand produces `repetitions` occurrences from the template. The first
// occurrence is the template itself; each end preserves the template's
// duration so the time-of-day stays intact on both sides.
//
// Monthly recurrence follows RFC 5545 semantics via rrule: a template
// anchored on day 29-31 only lands in months that have that day, there is no
// clamping to month end. A series started on Jan 31 therefore runs
// Jan 31, Mar 31, May 31, ...
func Expand(template Template, frequency Frequency, repetitions int) ([]Occurrence, error) {
	if repetitions < 1 || repetitions > MaxRepetitions {
		return nil, fmt.Errorf("repetitions must be between 1 and %d, got %d", MaxRepetitions, repetitions)
	}
	if template.End.Before(template.Start) {
		return nil, errors.New("template end date is before its start date")
	}

	var freq rrule.Frequency
	switch frequency {
	case FrequencyDaily:
		freq = rrule.DAILY
	case FrequencyWeekly:
		freq = rrule.WEEKLY
	case FrequencyMonthly:
		freq = rrule.MONTHLY
	default:
		return nil, fmt.Errorf("unrecognized frequency %q", frequency)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Count:   repetitions,
		Dtstart: template.Start,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %v", err)
	}

	duration := template.End.Sub(template.Start)
	starts := rule.All()
	occurrences := make([]Occurrence, 0, len(starts))
	for _, start := range starts {
		occurrences = append(occurrences, Occurrence{Start: start, End: start.Add(duration)})
	}

	return occurrences, nil
}

// Preview is the capped rendering of an expansion.
type Preview struct {
	Occurrences []Occurrence `json:"occurrences"`
	// Remainder counts the occurrences beyond PreviewLimit that will still be
	// created but aren't rendered.
	Remainder int `json:"remainder"`
}

func NewPreview(occurrences []Occurrence) Preview {
	if len(occurrences) <= PreviewLimit {
		return Preview{Occurrences: occurrences}
	}
	return Preview{
		Occurrences: occurrences[:PreviewLimit],
		Remainder:   len(occurrences) - PreviewLimit,
	}
}
