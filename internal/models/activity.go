// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package models

import (
	"time"

	"github.com/goccy/go-json"
)

// ActivityEntry is one row of the activity feed.
type ActivityEntry struct {
	EventID    string          `json:"eventId"`
	Type       string          `json:"type"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	Environment       string  `json:"environment"`
	DatabaseConnected bool    `json:"database_connected"`
	Uptime            float64 `json:"uptime"`
}
