package v1

import (
	"fmt"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventPlanned   EventStatus = "PLANNED"
	EventConfirmed EventStatus = "CONFIRMED"
	EventCancelled EventStatus = "CANCELLED"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventPlanned, EventConfirmed, EventCancelled:
		return true
	}
	return false
}

// Event is a booking placed inside a space's availability.
type Event struct {
	// ID is server-assigned on placement.
	ID string `json:"id"`

	// SpaceID is the single owning space. Events never belong to a venue directly.
	SpaceID string `json:"space_id"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Timezone is the IANA zone the schedule's wall-clock values are expressed in.
	Timezone string `json:"timezone"`

	// Rules is the anchor interval plus optional recurrence.
	Rules Schedule `json:"rules"`

	// Status defaults to PLANNED. CANCELLED events never block other placements.
	Status EventStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Event) Source() Source {
	return Source{ID: e.ID, Timezone: e.Timezone, Schedule: e.Rules}
}

// Blocking reports whether the event occupies its space.
func (e *Event) Blocking() bool {
	return e.Status != EventCancelled
}

// Validate ensures the event has all required attributes.
// Status defaults to PLANNED when empty.
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}

	if e.SpaceID == "" {
		return fmt.Errorf("space_id is required")
	}

	if e.Title == "" {
		return fmt.Errorf("title is required")
	}

	if e.Timezone == "" {
		return fmt.Errorf("timezone is required")
	}

	if e.Status == "" {
		e.Status = EventPlanned
	}
	if !e.Status.Valid() {
		return fmt.Errorf("invalid status %q", e.Status)
	}

	return e.Rules.Validate()
}

// Clone returns a deep copy.
func (e *Event) Clone() *Event {
	out := *e
	out.Rules = e.Rules.Clone()
	return &out
}
