package event

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labchat/labchat-server/internal/errdef"
	"github.com/labchat/labchat-server/internal/handler"
	"github.com/labchat/labchat-server/pkg/calendar"
	"github.com/labchat/labchat-server/pkg/model"
)

func NewHandler(eventService eventService) Handler {
	return Handler{
		eventService: eventService,
	}
}

type Handler struct {
	eventService eventService
}

type eventService interface {
	FindAll(ctx context.Context, labID uint, start, end time.Time) ([]model.Event, error)
	FindById(ctx context.Context, id uint) (*model.Event, error)
	Create(ctx context.Context, event *model.Event, statusName string) error
	CreateSeries(ctx context.Context, template *model.Event, statusName string, frequency calendar.Frequency, repetitions int) (*SeriesResult, error)
	PreviewSeries(ctx context.Context, template *model.Event, statusName string, frequency calendar.Frequency, repetitions int) (*calendar.Preview, error)
	Update(ctx context.Context, id uint, event *model.Event, statusName string) (*model.Event, error)
	UpdateStatus(ctx context.Context, id uint, statusName string) (*model.Event, error)
	Delete(ctx context.Context, id uint) error
	DeleteSeries(ctx context.Context, seriesID uuid.UUID) (int64, error)
	CalendarView(ctx context.Context, labID uint, options ViewOptions) (*CalendarPage, error)
	ICS(ctx context.Context, labID uint, start, end time.Time) (string, error)
}

type CreateEventRequest struct {
	LabID             uint      `json:"labId" binding:"required"`
	AssignerID        uint      `json:"assignerId" binding:"required"`
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description"`
	TypeID            *uint     `json:"typeId" binding:"required"`
	InstrumentID      *uint     `json:"instrumentId"`
	Status            string    `json:"status"`
	StartDate         time.Time `json:"startDate" binding:"required"`
	EndDate           time.Time `json:"endDate" binding:"required"`
	AssignedMemberIDs []uint    `json:"assignedMemberIds"`
}

func (r CreateEventRequest) toEvent() *model.Event {
	labID := r.LabID
	event := &model.Event{
		Title:        r.Title,
		Description:  r.Description,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		TypeID:       r.TypeID,
		InstrumentID: r.InstrumentID,
		AssignerID:   r.AssignerID,
		LabID:        &labID,
	}
	for _, memberID := range r.AssignedMemberIDs {
		event.Assignments = append(event.Assignments, model.EventAssignment{MemberID: memberID})
	}
	return event
}

type CreateRecurringEventRequest struct {
	CreateEventRequest
	Frequency   string `json:"frequency" binding:"required,oneOf=daily weekly monthly"`
	Repetitions int    `json:"repetitions" binding:"required,min=1,max=365"`
	// DryRun previews the occurrences without creating anything.
	DryRun bool `json:"dryRun"`
}

type UpdateEventStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events createEvent
	//
	// Create event
	//
	// Create a single calendar event
	//
	// responses:
	//   201: Event
	//   400: Error
	//   404: Error
	//   415: Error
	request := &CreateEventRequest{}
	if err := handler.DataBinder(c, request); err != nil {
		_ = c.Error(err)
		return
	}

	event := request.toEvent()
	if err := h.eventService.Create(c.Request.Context(), event, request.Status); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// CreateRecurring event series
func (h Handler) CreateRecurring(c *gin.Context) {
	// swagger:route POST /events/recurring createRecurringEvent
	//
	// Create recurring events
	//
	// Expand a recurring template and create each instance independently.
	// Set dryRun to preview the occurrences without creating anything.
	//
	// responses:
	//   200: Preview
	//   201: SeriesResult
	//   400: Error
	//   404: Error
	//   415: Error
	request := &CreateRecurringEventRequest{}
	if err := handler.DataBinder(c, request); err != nil {
		_ = c.Error(err)
		return
	}

	template := request.toEvent()
	frequency := calendar.Frequency(request.Frequency)

	if request.DryRun {
		preview, err := h.eventService.PreviewSeries(c.Request.Context(), template, request.Status, frequency, request.Repetitions)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, preview)
		return
	}

	result, err := h.eventService.CreateSeries(c.Request.Context(), template, request.Status, frequency, request.Repetitions)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// FindById event
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find an event by its id
	//
	// responses:
	//   200: Event
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Update event
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /events/{id} updateEvent
	//
	// Update event
	//
	// Replace an event with the submitted shape, assignments included
	//
	// responses:
	//   200: Event
	//   400: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	request := &CreateEventRequest{}
	if err := handler.DataBinder(c, request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), id, request.toEvent(), request.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateStatus of an event
func (h Handler) UpdateStatus(c *gin.Context) {
	// swagger:route PUT /events/{id}/status updateEventStatus
	//
	// Update event status
	//
	// Move an event to the lab status with the given name
	//
	// responses:
	//   200: Event
	//   400: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	request := &UpdateEventStatusRequest{}
	if err := handler.DataBinder(c, request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.UpdateStatus(c.Request.Context(), id, request.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete event
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /events/{id} deleteEvent
	//
	// Delete event
	//
	// Delete an event by its id
	//
	// responses:
	//   204:
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteSeries of recurring events
func (h Handler) DeleteSeries(c *gin.Context) {
	// swagger:route DELETE /events/series/{uid} deleteEventSeries
	//
	// Delete event series
	//
	// Delete every instance of a recurring series
	//
	// responses:
	//   200: SeriesDeletion
	//   400: Error
	//   404: Error
	//   415: Error
	seriesID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("error parsing series id: %v", err))
		return
	}

	deleted, err := h.eventService.DeleteSeries(c.Request.Context(), seriesID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// FindAll events of a lab
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /labs/{id}/events findEvents
	//
	// Find events
	//
	// Find the events of a lab overlapping [start, end]
	//
	// responses:
	//   200: []Event
	//   400: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	start, err := requireTimeQuery(c, "start")
	if err != nil {
		_ = c.Error(err)
		return
	}
	end, err := requireTimeQuery(c, "end")
	if err != nil {
		_ = c.Error(err)
		return
	}

	events, err := h.eventService.FindAll(c.Request.Context(), id, start, end)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// Calendar view of a lab
func (h Handler) Calendar(c *gin.Context) {
	// swagger:route GET /labs/{id}/calendar findCalendar
	//
	// Calendar view
	//
	// Materialize the calendar of a lab for one view: resolve the visible
	// range from date and view, apply the facet filters and shape the
	// response for rendering
	//
	// responses:
	//   200: CalendarPage
	//   400: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	options, err := bindViewOptions(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	page, err := h.eventService.CalendarView(c.Request.Context(), id, options)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Feed serves the lab calendar as iCalendar
func (h Handler) Feed(c *gin.Context) {
	// swagger:route GET /labs/{id}/calendar.ics findCalendarFeed
	//
	// Calendar feed
	//
	// Serve the events of a lab as an iCalendar feed. Defaults to the
	// current month when start and end are omitted.
	//
	// responses:
	//   200:
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	rng, err := calendar.ResolveRange(time.Now(), calendar.ViewMonth)
	if err != nil {
		_ = c.Error(err)
		return
	}
	start, end := rng.Start, rng.End
	if c.Query("start") != "" {
		if start, err = requireTimeQuery(c, "start"); err != nil {
			_ = c.Error(err)
			return
		}
	}
	if c.Query("end") != "" {
		if end, err = requireTimeQuery(c, "end"); err != nil {
			_ = c.Error(err)
			return
		}
	}

	feed, err := h.eventService.ICS(c.Request.Context(), id, start, end)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func bindViewOptions(c *gin.Context) (ViewOptions, error) {
	options := ViewOptions{
		Date: time.Now(),
		View: calendar.View(c.DefaultQuery("view", string(calendar.ViewMonth))),
	}
	switch options.View {
	case calendar.ViewDay, calendar.ViewWeek, calendar.ViewMonth, calendar.ViewYear, calendar.ViewAgenda:
	default:
		return ViewOptions{}, errdef.NewBadRequest("unrecognized calendar view %q", options.View)
	}

	if c.Query("date") != "" {
		date, err := requireTimeQuery(c, "date")
		if err != nil {
			return ViewOptions{}, err
		}
		options.Date = date
	}

	filter, err := bindFilter(c)
	if err != nil {
		return ViewOptions{}, err
	}
	options.Filter = filter
	return options, nil
}

// bindFilter reads the facet query parameters. An absent parameter or the
// literal "all" means no filtering on that dimension; instrument additionally
// accepts "none" for events without an instrument.
func bindFilter(c *gin.Context) (calendar.Filter, error) {
	filter := calendar.Filter{}

	var err error
	if filter.MemberID, err = selectionQuery(c, "member"); err != nil {
		return calendar.Filter{}, err
	}
	if filter.TypeID, err = selectionQuery(c, "type"); err != nil {
		return calendar.Filter{}, err
	}
	if filter.StatusID, err = selectionQuery(c, "status"); err != nil {
		return calendar.Filter{}, err
	}

	if c.Query("instrument") == "none" {
		filter.NoInstrument = true
		return filter, nil
	}
	if filter.InstrumentID, err = selectionQuery(c, "instrument"); err != nil {
		return calendar.Filter{}, err
	}
	return filter, nil
}

func selectionQuery(c *gin.Context, name string) (*uint, error) {
	value := c.Query(name)
	if value == "" || value == "all" {
		return nil, nil
	}

	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil, errdef.NewBadRequest("error parsing %q: %v", name, err)
	}
	parsed := uint(id)
	return &parsed, nil
}

// requireTimeQuery parses a query parameter as RFC 3339 or as a bare
// calendar date.
func requireTimeQuery(c *gin.Context, name string) (time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, errdef.NewBadRequest("required query parameter %q is missing", name)
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, errdef.NewBadRequest("error parsing %q: %v", name, err)
	}
	return t, nil
}
