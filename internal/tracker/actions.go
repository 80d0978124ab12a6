// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package tracker

import (
	"context"
	"time"

	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/eventprocessor"
	"github.com/tomtom215/habitline/internal/metrics"
)

// StartAction records an action for an active habit. With end set the
// action is stored already completed.
func (s *Service) StartAction(ctx context.Context, habitID string, start time.Time, end *time.Time) (domain.Action, error) {
	h, err := s.activeHabit(ctx, habitID)
	if err != nil {
		return domain.Action{}, err
	}
	a, err := domain.NewAction(s.newID(), habitID, start, end, s.clock())
	if err != nil {
		return domain.Action{}, translate(err, nil)
	}
	if err := s.store.CreateAction(ctx, a); err != nil {
		return domain.Action{}, translate(err, refs{"Habit": habitID})
	}

	metrics.ActionsRecorded.WithLabelValues(string(h.Type)).Inc()
	s.emit(ctx, eventprocessor.EventActionStarted, a.ID, actionPayload(a))
	if a.IsCompleted() {
		s.emit(ctx, eventprocessor.EventActionCompleted, a.ID, actionPayload(a))
	}
	return a, nil
}

// CompleteAction closes an ongoing action at end.
func (s *Service) CompleteAction(ctx context.Context, id string, end time.Time) (domain.Action, error) {
	ids := refs{"Action": id}
	a, err := s.store.GetAction(ctx, id)
	if err != nil {
		return domain.Action{}, translate(err, ids)
	}
	done, err := a.Complete(end, s.clock())
	if err != nil {
		return domain.Action{}, translate(err, ids)
	}
	if err := s.store.CompleteAction(ctx, done); err != nil {
		return domain.Action{}, translate(err, ids)
	}
	s.emit(ctx, eventprocessor.EventActionCompleted, id, actionPayload(done))
	return done, nil
}

// GetAction returns the action with id.
func (s *Service) GetAction(ctx context.Context, id string) (domain.Action, error) {
	a, err := s.store.GetAction(ctx, id)
	if err != nil {
		return domain.Action{}, translate(err, refs{"Action": id})
	}
	return a, nil
}

// ListHabitActions returns one page of the habit's actions, newest first.
func (s *Service) ListHabitActions(ctx context.Context, habitID string, page PageRequest) (Page[domain.Action], error) {
	if _, err := s.store.GetHabit(ctx, habitID); err != nil {
		return Page[domain.Action]{}, translate(err, refs{"Habit": habitID})
	}
	req := s.pageOf(page)
	actions, total, err := s.store.ListActions(ctx, habitID, req.store())
	if err != nil {
		return Page[domain.Action]{}, err
	}
	return newPage(actions, total, req), nil
}

func actionPayload(a domain.Action) map[string]interface{} {
	p := map[string]interface{}{
		"habitId":   a.HabitID,
		"startTime": a.TimeRange.Start(),
	}
	if end, ok := a.TimeRange.End(); ok {
		p["endTime"] = end
	}
	if a.DurationSeconds != nil {
		p["durationSeconds"] = *a.DurationSeconds
	}
	return p
}
