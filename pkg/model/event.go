package model

import (
	"time"

	"github.com/google/uuid"
)

// Event domain object defining a calendar event. StartDate ≤ EndDate is
// enforced at the service layer.
// swagger:model
type Event struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `gorm:"index" json:"startDate"`
	EndDate     time.Time `gorm:"index" json:"endDate"`

	TypeID       *uint        `json:"typeId,omitempty"`
	Type         *EventType   `json:"type,omitempty"`
	StatusID     *uint        `json:"statusId,omitempty"`
	Status       *EventStatus `json:"status,omitempty"`
	InstrumentID *uint        `json:"instrumentId,omitempty"`
	Instrument   *Instrument  `json:"instrument,omitempty"`

	AssignerID  uint              `json:"assignerId"`
	Assigner    Member            `json:"assigner"`
	Assignments []EventAssignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignments"`

	LabID *uint `json:"labId,omitempty"`
	Lab   *Lab  `json:"lab,omitempty"`

	// SeriesID links the instances generated from one recurring template so a
	// series can be inspected and cancelled as a whole.
	SeriesID *uuid.UUID `gorm:"type:uuid;index" json:"seriesId,omitempty"`

	// Color is resolved from the event type, not stored.
	Color string `gorm:"-" json:"color,omitempty"`
}

// EventAssignment attaches a member to an event as a participant, distinct
// from the assigner. Position keeps the submitted order.
type EventAssignment struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	EventID  uint    `gorm:"index" json:"-"`
	MemberID uint    `json:"memberId"`
	Member   *Member `json:"member,omitempty"`
	Position int     `json:"-"`
}

// EventType classifies events within a lab
// swagger:model
type EventType struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"index:idx_event_type_name_and_lab,unique" json:"name"`
	Color     string    `json:"color"`
	LabID     uint      `gorm:"index:idx_event_type_name_and_lab,unique" json:"labId"`
}

// EventStatus is the workflow state of an event within a lab
// swagger:model
type EventStatus struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"index:idx_event_status_name_and_lab,unique" json:"name"`
	Color     string    `json:"color"`
	LabID     uint      `gorm:"index:idx_event_status_name_and_lab,unique" json:"labId"`
}

// Instrument is a bookable piece of lab equipment. Name is nullable since
// legacy records were imported without one.
// swagger:model
type Instrument struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      *string   `json:"name"`
	LabID     uint      `gorm:"index" json:"labId"`
}
