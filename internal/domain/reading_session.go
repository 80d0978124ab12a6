// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package domain

import "time"

// ReadingSession is the reading log attached to one completed action.
type ReadingSession struct {
	ID                  string
	ActionID            string
	BookID              string
	NumberOfCharacters  int
	Breaths             int
	CharactersPerMinute float64
	BreathsPerMinute    float64
	UsingVoice          bool
	CreatedAt           time.Time
}

// NewReadingSession derives per-minute rates from the action's duration.
// The action must be completed.
func NewReadingSession(id string, action Action, bookID string, characters, breaths int, usingVoice bool, now time.Time) (ReadingSession, error) {
	if bookID == "" {
		return ReadingSession{}, invalid("bookId", "book id is required")
	}
	minutes, ok := action.TimeRange.DurationMinutes()
	if !ok {
		return ReadingSession{}, invalid("endTime", "a reading session needs an end time")
	}
	if characters < 0 {
		return ReadingSession{}, invalid("numberOfCharacters", "number of characters cannot be negative")
	}
	if breaths < 0 {
		return ReadingSession{}, invalid("breaths", "breaths cannot be negative")
	}
	return ReadingSession{
		ID:                  id,
		ActionID:            action.ID,
		BookID:              bookID,
		NumberOfCharacters:  characters,
		Breaths:             breaths,
		CharactersPerMinute: float64(characters) / minutes,
		BreathsPerMinute:    float64(breaths) / minutes,
		UsingVoice:          usingVoice,
		CreatedAt:           now,
	}, nil
}
