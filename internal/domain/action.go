// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package domain

import "time"

// Action is one occurrence of a habit.
type Action struct {
	ID        string
	HabitID   string
	TimeRange TimeRange
	// DurationSeconds is nil while the action is ongoing.
	DurationSeconds *int64
	// ActionDate is the UTC calendar day the action started on.
	ActionDate time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAction validates the time range and derives duration and day.
func NewAction(id, habitID string, start time.Time, end *time.Time, now time.Time) (Action, error) {
	if habitID == "" {
		return Action{}, invalid("habitId", "habit id is required")
	}
	tr, err := NewTimeRange(start, end, now)
	if err != nil {
		return Action{}, err
	}
	return Action{
		ID:              id,
		HabitID:         habitID,
		TimeRange:       tr,
		DurationSeconds: durationPtr(tr),
		ActionDate:      ActionDay(start),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Complete returns the action closed at end.
func (a Action) Complete(end, now time.Time) (Action, error) {
	if a.TimeRange.IsCompleted() {
		return a, ErrAlreadyCompleted
	}
	tr, err := a.TimeRange.Complete(end, now)
	if err != nil {
		return a, err
	}
	a.TimeRange = tr
	a.DurationSeconds = durationPtr(tr)
	a.UpdatedAt = now
	return a, nil
}

func (a Action) IsOngoing() bool   { return !a.TimeRange.IsCompleted() }
func (a Action) IsCompleted() bool { return a.TimeRange.IsCompleted() }

// ActionDay truncates t to midnight UTC.
func ActionDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func durationPtr(tr TimeRange) *int64 {
	s, ok := tr.DurationSeconds()
	if !ok {
		return nil
	}
	return &s
}
