// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package eventprocessor

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// EventType names a domain event.
type EventType string

const (
	EventHabitCreated        EventType = "habit.created"
	EventHabitUpdated        EventType = "habit.updated"
	EventHabitDeactivated    EventType = "habit.deactivated"
	EventHabitActionRecorded EventType = "habit.action_recorded"

	EventActionStarted   EventType = "action.started"
	EventActionCompleted EventType = "action.completed"

	EventBookCreated EventType = "book.created"
	EventBookUpdated EventType = "book.updated"
	EventBookDeleted EventType = "book.deleted"

	EventReadingSessionRecorded EventType = "reading_session.recorded"
)

// EventTypes lists every known event type.
var EventTypes = []EventType{
	EventHabitCreated, EventHabitUpdated, EventHabitDeactivated, EventHabitActionRecorded,
	EventActionStarted, EventActionCompleted,
	EventBookCreated, EventBookUpdated, EventBookDeleted,
	EventReadingSessionRecorded,
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EntityType is the part of t before the first dot: "habit", "action",
// "book" or "reading_session".
func (t EventType) EntityType() string {
	entity, _, _ := strings.Cut(string(t), ".")
	return entity
}

// Event is the envelope published on the bus.
type Event struct {
	EventID    string          `json:"event_id"`
	Type       EventType       `json:"type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// NewEvent builds an event with a fresh id. payload is encoded as JSON and
// may be nil.
func NewEvent(t EventType, entityID string, payload interface{}, at time.Time) (*Event, error) {
	e := &Event{
		EventID:    uuid.New().String(),
		Type:       t,
		EntityType: t.EntityType(),
		EntityID:   entityID,
		OccurredAt: at.UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", t, err)
		}
		e.Payload = raw
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the required fields.
func (e *Event) Validate() error {
	switch {
	case e.EventID == "":
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	case !e.Type.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	case e.EntityType != e.Type.EntityType():
		return fmt.Errorf("%w: entity_type %q does not match %s", ErrInvalidEvent, e.EntityType, e.Type)
	case e.EntityID == "":
		return fmt.Errorf("%w: entity_id is required", ErrInvalidEvent)
	case e.OccurredAt.IsZero():
		return fmt.Errorf("%w: occurred_at is required", ErrInvalidEvent)
	}
	if len(e.Payload) > 0 && !json.Valid(e.Payload) {
		return fmt.Errorf("%w: payload is not valid JSON", ErrInvalidEvent)
	}
	return nil
}
