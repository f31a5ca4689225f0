package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labchat/labchat-server/internal/errdef"
	"github.com/labchat/labchat-server/pkg/calendar"
	"github.com/labchat/labchat-server/pkg/metrics"
	"github.com/labchat/labchat-server/pkg/model"
)

type statusFinder interface {
	FindStatusByName(ctx context.Context, labID uint, name string) (*model.EventStatus, error)
}

func NewService(logger *slog.Logger, repository *repository, statuses statusFinder) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		statuses:   statuses,
	}
}

type Service struct {
	logger     *slog.Logger
	repository *repository
	statuses   statusFinder
}

// FindAll returns the events of a lab overlapping [start, end] with their
// presentation colors resolved.
func (s Service) FindAll(ctx context.Context, labID uint, start, end time.Time) ([]model.Event, error) {
	if end.Before(start) {
		return nil, errdef.NewBadRequest("end date is before start date")
	}

	events, err := s.repository.findAllInRange(ctx, labID, start, end)
	if err != nil {
		return nil, err
	}
	return resolveColors(events), nil
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Event, error) {
	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Color = calendar.ResolveColor(*event)
	return event, nil
}

// Create stores a single event. A non-empty statusName is resolved against the
// lab's statuses; clients send the name, not the id.
func (s Service) Create(ctx context.Context, event *model.Event, statusName string) error {
	if err := s.validate(ctx, event, statusName); err != nil {
		return err
	}

	if err := s.repository.create(ctx, event); err != nil {
		return err
	}

	metrics.EventsCreated.Inc()
	s.logger.InfoContext(ctx, "Created event", "id", event.ID, "lab", event.LabID)
	return nil
}

// SeriesResult is the per-instance accounting of a recurring create. One
// failing instance doesn't void the rest; the caller gets both lists and
// decides what to do about the failures.
type SeriesResult struct {
	SeriesID uuid.UUID          `json:"seriesId"`
	Created  []model.Event      `json:"created"`
	Failed   []FailedOccurrence `json:"failed,omitempty"`
}

type FailedOccurrence struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Error string    `json:"error"`
}

// CreateSeries expands the template into concrete occurrences, stamps them
// with a fresh series id and creates each instance independently.
func (s Service) CreateSeries(ctx context.Context, template *model.Event, statusName string, frequency calendar.Frequency, repetitions int) (*SeriesResult, error) {
	if err := s.validate(ctx, template, statusName); err != nil {
		return nil, err
	}

	occurrences, err := s.expand(template, frequency, repetitions)
	if err != nil {
		return nil, err
	}

	seriesID := uuid.New()
	result := &SeriesResult{SeriesID: seriesID}
	for _, occurrence := range occurrences {
		instance := cloneTemplate(template)
		instance.StartDate = occurrence.Start
		instance.EndDate = occurrence.End
		instance.SeriesID = &seriesID

		if err := s.repository.create(ctx, instance); err != nil {
			s.logger.ErrorContext(ctx, "Failed to create series instance", "series", seriesID, "start", occurrence.Start, "error", err)
			result.Failed = append(result.Failed, FailedOccurrence{
				Start: occurrence.Start,
				End:   occurrence.End,
				Error: err.Error(),
			})
			continue
		}

		metrics.EventsCreated.Inc()
		result.Created = append(result.Created, *instance)
	}

	s.logger.InfoContext(ctx, "Created event series", "series", seriesID, "created", len(result.Created), "failed", len(result.Failed))
	return result, nil
}

// PreviewSeries expands the template without persisting anything and returns
// the capped occurrence list a client renders before committing.
func (s Service) PreviewSeries(ctx context.Context, template *model.Event, statusName string, frequency calendar.Frequency, repetitions int) (*calendar.Preview, error) {
	if err := s.validate(ctx, template, statusName); err != nil {
		return nil, err
	}

	occurrences, err := s.expand(template, frequency, repetitions)
	if err != nil {
		return nil, err
	}

	preview := calendar.NewPreview(occurrences)
	return &preview, nil
}

func (s Service) expand(template *model.Event, frequency calendar.Frequency, repetitions int) ([]calendar.Occurrence, error) {
	occurrences, err := calendar.Expand(calendar.Template{
		Start: template.StartDate,
		End:   template.EndDate,
	}, frequency, repetitions)
	if err != nil {
		return nil, errdef.NewBadRequest("invalid recurrence: %v", err)
	}

	metrics.SeriesExpansions.Inc()
	return occurrences, nil
}

// Update replaces the stored record with the submitted one, assignments
// included. Partial updates aren't a thing; clients resubmit the full shape.
func (s Service) Update(ctx context.Context, id uint, event *model.Event, statusName string) (*model.Event, error) {
	if err := s.validate(ctx, event, statusName); err != nil {
		return nil, err
	}

	event.ID = id
	if err := s.repository.update(ctx, event); err != nil {
		return nil, err
	}

	return s.FindById(ctx, id)
}

// UpdateStatus moves an event to the lab status with the given name.
func (s Service) UpdateStatus(ctx context.Context, id uint, statusName string) (*model.Event, error) {
	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.LabID == nil {
		return nil, errdef.NewBadRequest("event %d doesn't belong to a lab", id)
	}

	status, err := s.statuses.FindStatusByName(ctx, *event.LabID, statusName)
	if err != nil {
		return nil, err
	}

	if err := s.repository.updateStatus(ctx, id, status.ID); err != nil {
		return nil, err
	}
	return s.FindById(ctx, id)
}

func (s Service) Delete(ctx context.Context, id uint) error {
	if err := s.repository.delete(ctx, id); err != nil {
		return err
	}

	metrics.EventsDeleted.Inc()
	s.logger.InfoContext(ctx, "Deleted event", "id", id)
	return nil
}

// DeleteSeries cancels every instance of a recurring series and returns how
// many were removed.
func (s Service) DeleteSeries(ctx context.Context, seriesID uuid.UUID) (int64, error) {
	deleted, err := s.repository.deleteBySeries(ctx, seriesID)
	if err != nil {
		return 0, err
	}

	metrics.EventsDeleted.Add(float64(deleted))
	s.logger.InfoContext(ctx, "Deleted event series", "series", seriesID, "deleted", deleted)
	return deleted, nil
}

func (s Service) validate(ctx context.Context, event *model.Event, statusName string) error {
	if event.EndDate.Before(event.StartDate) {
		return errdef.NewBadRequest("end date is before start date")
	}

	if statusName != "" {
		if event.LabID == nil {
			return errdef.NewBadRequest("event doesn't belong to a lab")
		}
		status, err := s.statuses.FindStatusByName(ctx, *event.LabID, statusName)
		if err != nil {
			return err
		}
		event.StatusID = &status.ID
	}
	return nil
}

func cloneTemplate(template *model.Event) *model.Event {
	instance := &model.Event{
		Title:        template.Title,
		Description:  template.Description,
		TypeID:       template.TypeID,
		StatusID:     template.StatusID,
		InstrumentID: template.InstrumentID,
		AssignerID:   template.AssignerID,
		LabID:        template.LabID,
	}
	for _, assignment := range template.Assignments {
		instance.Assignments = append(instance.Assignments, model.EventAssignment{
			MemberID: assignment.MemberID,
		})
	}
	return instance
}

func resolveColors(events []model.Event) []model.Event {
	for i := range events {
		events[i].Color = calendar.ResolveColor(events[i])
	}
	return events
}
