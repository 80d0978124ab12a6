// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package models

import (
	"time"

	"github.com/tomtom215/habitline/internal/domain"
)

// HabitResponse is the public view of a habit.
type HabitResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	HabitType         string     `json:"habitType"`
	Logo              string     `json:"logo"`
	IsActive          bool       `json:"isActive"`
	TotalActionsCount int        `json:"totalActionsCount"`
	LastActionDate    *time.Time `json:"lastActionDate"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// NewHabitResponse converts a domain habit. Logo must already be resolved
// from the media store.
func NewHabitResponse(h domain.Habit) HabitResponse {
	return HabitResponse{
		ID:                h.ID,
		Name:              h.Name.String(),
		HabitType:         string(h.Type),
		Logo:              h.Logo,
		IsActive:          h.IsActive,
		TotalActionsCount: h.TotalActionsCount,
		LastActionDate:    h.LastActionDate,
		CreatedAt:         h.CreatedAt,
		UpdatedAt:         h.UpdatedAt,
	}
}

// HabitDetails is a habit together with its recent actions.
type HabitDetails struct {
	HabitResponse
	Actions []ActionDetails `json:"actions"`
}

// ActionDetails is an action plus the reading session recorded for it, if
// the action was a reading session.
type ActionDetails struct {
	ActionResponse
	ReadingSession *ReadingSessionResponse `json:"readingSession"`
	Book           *BookResponse           `json:"book"`
}
