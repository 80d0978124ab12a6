// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package models

import (
	"time"

	"github.com/tomtom215/habitline/internal/domain"
)

// ActionResponse is the public view of an action.
type ActionResponse struct {
	ID              string     `json:"id"`
	HabitID         string     `json:"habitId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	DurationSeconds *int64     `json:"durationSeconds"`
	ActionDate      string     `json:"actionDate"`
	IsCompleted     bool       `json:"isCompleted"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ActionDateLayout renders ActionResponse.ActionDate.
const ActionDateLayout = "2006-01-02"

// NewActionResponse converts a domain action.
func NewActionResponse(a domain.Action) ActionResponse {
	return ActionResponse{
		ID:              a.ID,
		HabitID:         a.HabitID,
		StartTime:       a.TimeRange.Start(),
		EndTime:         a.TimeRange.EndPtr(),
		DurationSeconds: a.DurationSeconds,
		ActionDate:      a.ActionDate.Format(ActionDateLayout),
		IsCompleted:     a.IsCompleted(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
