// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package models

import (
	"time"

	"github.com/tomtom215/habitline/internal/domain"
)

// ReadingSessionResponse is the public view of a reading session. Action
// is included when the caller has it at hand.
type ReadingSessionResponse struct {
	ID                  string          `json:"id"`
	ActionID            string          `json:"actionId"`
	BookID              string          `json:"bookId"`
	NumberOfCharacters  int             `json:"numberOfCharacters"`
	Breaths             int             `json:"breaths"`
	CharactersPerMinute float64         `json:"charactersPerMinute"`
	BreathsPerMinute    float64         `json:"breathsPerMinute"`
	UsingVoice          bool            `json:"usingVoice"`
	CreatedAt           time.Time       `json:"createdAt"`
	Action              *ActionResponse `json:"action,omitempty"`
}

// NewReadingSessionResponse converts a domain reading session.
func NewReadingSessionResponse(rs domain.ReadingSession) ReadingSessionResponse {
	return ReadingSessionResponse{
		ID:                  rs.ID,
		ActionID:            rs.ActionID,
		BookID:              rs.BookID,
		NumberOfCharacters:  rs.NumberOfCharacters,
		Breaths:             rs.Breaths,
		CharactersPerMinute: rs.CharactersPerMinute,
		BreathsPerMinute:    rs.BreathsPerMinute,
		UsingVoice:          rs.UsingVoice,
		CreatedAt:           rs.CreatedAt,
	}
}

// WithAction attaches the session's action.
func (r ReadingSessionResponse) WithAction(a domain.Action) ReadingSessionResponse {
	ar := NewActionResponse(a)
	r.Action = &ar
	return r
}
