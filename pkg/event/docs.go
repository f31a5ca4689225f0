package event

// swagger:parameters findEventById updateEvent updateEventStatus deleteEvent findEvents findCalendar findCalendarFeed
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:parameters deleteEventSeries
type _ struct {
	// in: path
	// required: true
	UID string `json:"uid"`
}

// swagger:parameters createEvent updateEvent
type _ struct {
	// in: body
	Body CreateEventRequest
}

// swagger:parameters createRecurringEvent
type _ struct {
	// in: body
	Body CreateRecurringEventRequest
}

// swagger:parameters updateEventStatus
type _ struct {
	// in: body
	Body UpdateEventStatusRequest
}
