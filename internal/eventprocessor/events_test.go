// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package eventprocessor

import (
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

var testTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestEventType_EntityType(t *testing.T) {
	t.Parallel()
	tests := map[EventType]string{
		EventHabitCreated:           "habit",
		EventHabitActionRecorded:    "habit",
		EventActionCompleted:        "action",
		EventBookDeleted:            "book",
		EventReadingSessionRecorded: "reading_session",
	}
	for typ, want := range tests {
		if got := typ.EntityType(); got != want {
			t.Errorf("%s.EntityType() = %q, want %q", typ, got, want)
		}
	}
	for _, typ := range EventTypes {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if EventType("habit.exploded").Valid() {
		t.Error("unknown type should be invalid")
	}
}

func TestNewEvent(t *testing.T) {
	t.Parallel()
	local := testTime.In(time.FixedZone("UTC+2", 2*60*60))
	e, err := NewEvent(EventBookCreated, "b-1", map[string]interface{}{"name": "Dune"}, local)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if e.EventID == "" || e.EntityType != "book" || e.EntityID != "b-1" {
		t.Errorf("NewEvent() = %+v", e)
	}
	if e.OccurredAt.Location() != time.UTC || !e.OccurredAt.Equal(testTime) {
		t.Errorf("OccurredAt = %v, want %v in UTC", e.OccurredAt, testTime)
	}
	if string(e.Payload) != `{"name":"Dune"}` {
		t.Errorf("Payload = %s", e.Payload)
	}

	noPayload, err := NewEvent(EventBookDeleted, "b-1", nil, testTime)
	if err != nil || len(noPayload.Payload) != 0 {
		t.Errorf("nil payload = %s, %v", noPayload.Payload, err)
	}

	if _, err := NewEvent(EventBookDeleted, "", nil, testTime); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("missing entity id err = %v", err)
	}
	if _, err := NewEvent("nope", "b-1", nil, testTime); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("unknown type err = %v", err)
	}
}

func TestEvent_Validate(t *testing.T) {
	t.Parallel()
	valid := func() Event {
		return Event{
			EventID:    "e-1",
			Type:       EventHabitCreated,
			EntityType: "habit",
			EntityID:   "h-1",
			OccurredAt: testTime,
		}
	}
	tests := []struct {
		name   string
		mutate func(*Event)
	}{
		{"missing id", func(e *Event) { e.EventID = "" }},
		{"bad type", func(e *Event) { e.Type = "habit.vanished" }},
		{"mismatched entity", func(e *Event) { e.EntityType = "book" }},
		{"missing entity id", func(e *Event) { e.EntityID = "" }},
		{"zero time", func(e *Event) { e.OccurredAt = time.Time{} }},
		{"bad payload", func(e *Event) { e.Payload = json.RawMessage(`{"x":`) }},
	}
	base := valid()
	if err := base.Validate(); err != nil {
		t.Fatalf("valid event: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := valid()
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, ErrInvalidEvent) {
				t.Errorf("Validate() = %v, want ErrInvalidEvent", err)
			}
		})
	}
}

func TestSerializeDeserialize(t *testing.T) {
	t.Parallel()
	e, _ := NewEvent(EventActionCompleted, "a-1", map[string]int{"durationSeconds": 90}, testTime)

	data, err := SerializeEvent(e)
	if err != nil {
		t.Fatalf("SerializeEvent: %v", err)
	}
	got, err := DeserializeEvent(data)
	if err != nil {
		t.Fatalf("DeserializeEvent: %v", err)
	}
	if got.EventID != e.EventID || got.Type != e.Type || !got.OccurredAt.Equal(e.OccurredAt) {
		t.Errorf("round trip = %+v", got)
	}
	if string(got.Payload) != `{"durationSeconds":90}` {
		t.Errorf("payload = %s", got.Payload)
	}

	if _, err := SerializeEvent(nil); !errors.Is(err, ErrNilEvent) {
		t.Errorf("nil event err = %v", err)
	}
	if _, err := DeserializeEvent([]byte("not json")); err == nil {
		t.Error("garbage should fail to decode")
	}
	if _, err := DeserializeEvent([]byte(`{"event_id":"x","type":"habit.created"}`)); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("incomplete event err = %v", err)
	}
}
