// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/habitline/internal/database"
	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/eventprocessor"
	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/metrics"
)

// CreateHabitInput is the input to CreateHabit.
type CreateHabitInput struct {
	Name      string
	HabitType domain.Complexity
	Logo      string
}

// UpdateHabitInput carries optional changes; nil fields are left alone.
type UpdateHabitInput struct {
	Name      *string
	Logo      *string
	HabitType *domain.Complexity
}

// HabitQuery filters ListHabits.
type HabitQuery struct {
	PageRequest
	IsActive  *bool
	HabitType *domain.Complexity
}

// ActionDetail is an action with its reading session and book, if any.
type ActionDetail struct {
	Action  domain.Action
	Session *domain.ReadingSession
	Book    *domain.Book
}

// HabitDetails is a habit with its most recent actions.
type HabitDetails struct {
	Habit   domain.Habit
	Actions []ActionDetail
}

func nameConflict(name string, cause error) *Error {
	return conflict(fmt.Sprintf("Habit with name '%s' already exists", name), cause)
}

// CreateHabit validates and stores a new active habit.
func (s *Service) CreateHabit(ctx context.Context, in CreateHabitInput) (domain.Habit, error) {
	now := s.clock()
	h, err := domain.NewHabit(s.newID(), in.Name, in.HabitType, in.Logo, now)
	if err != nil {
		return domain.Habit{}, translate(err, nil)
	}
	if err := s.checkNameFree(ctx, h.Name, ""); err != nil {
		return domain.Habit{}, err
	}

	stored := h
	if stored.Logo, err = s.putImage(ctx, h.Logo); err != nil {
		return domain.Habit{}, err
	}
	if err := s.store.CreateHabit(ctx, stored); err != nil {
		if errors.Is(err, database.ErrHabitNameConflict) {
			return domain.Habit{}, nameConflict(h.Name.String(), err)
		}
		return domain.Habit{}, translate(err, nil)
	}

	metrics.HabitsCreated.Inc()
	logging.Ctx(ctx).Info().Str("habit_id", h.ID).Str("habit_type", string(h.Type)).Msg("Habit created")
	s.emit(ctx, eventprocessor.EventHabitCreated, h.ID, map[string]interface{}{
		"name":      h.Name.String(),
		"habitType": h.Type,
	})
	return h, nil
}

// checkNameFree fails with a conflict when another active habit already
// uses name. self is excluded so a habit can keep its own name.
func (s *Service) checkNameFree(ctx context.Context, name domain.HabitName, self string) error {
	existing, err := s.store.GetActiveHabitByName(ctx, name.String())
	switch {
	case errors.Is(err, database.ErrHabitNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	default:
		return nameConflict(name.String(), nil)
	}
}

// ListHabits returns one page of habits, newest first.
func (s *Service) ListHabits(ctx context.Context, q HabitQuery) (Page[domain.Habit], error) {
	req := s.pageOf(q.PageRequest)
	if q.HabitType != nil && !q.HabitType.Valid() {
		return Page[domain.Habit]{}, validation("habitType", "habit type must be one of Complex, Simple, Without Intervals")
	}
	habits, total, err := s.store.ListHabits(ctx, database.HabitFilter{IsActive: q.IsActive, HabitType: q.HabitType}, req.store())
	if err != nil {
		return Page[domain.Habit]{}, err
	}
	for i := range habits {
		if habits[i], err = s.resolveHabit(ctx, habits[i]); err != nil {
			return Page[domain.Habit]{}, err
		}
	}
	return newPage(habits, total, req), nil
}

// GetHabit returns the habit with id.
func (s *Service) GetHabit(ctx context.Context, id string) (domain.Habit, error) {
	h, err := s.store.GetHabit(ctx, id)
	if err != nil {
		return domain.Habit{}, translate(err, refs{"Habit": id})
	}
	return s.resolveHabit(ctx, h)
}

// GetHabitDetails returns the habit with its most recent actions, each
// joined with its reading session and book.
func (s *Service) GetHabitDetails(ctx context.Context, id string) (HabitDetails, error) {
	h, err := s.GetHabit(ctx, id)
	if err != nil {
		return HabitDetails{}, err
	}
	rows, err := s.store.ListActionDetails(ctx, id, detailActions)
	if err != nil {
		return HabitDetails{}, err
	}
	details := HabitDetails{Habit: h, Actions: make([]ActionDetail, 0, len(rows))}
	for _, r := range rows {
		d := ActionDetail{Action: r.Action, Session: r.Session}
		if r.Book != nil {
			b, err := s.resolveBook(ctx, *r.Book)
			if err != nil {
				return HabitDetails{}, err
			}
			d.Book = &b
		}
		details.Actions = append(details.Actions, d)
	}
	return details, nil
}

// UpdateHabit applies in to the habit with id. Inactive habits can still be
// edited.
func (s *Service) UpdateHabit(ctx context.Context, id string, in UpdateHabitInput) (domain.Habit, error) {
	current, err := s.store.GetHabit(ctx, id)
	if err != nil {
		return domain.Habit{}, translate(err, refs{"Habit": id})
	}
	now := s.clock()
	next := current

	if in.Name != nil {
		if next, err = next.Rename(*in.Name, now); err != nil {
			return domain.Habit{}, translate(err, nil)
		}
		if next.IsActive && !next.Name.Equal(current.Name) {
			if err := s.checkNameFree(ctx, next.Name, id); err != nil {
				return domain.Habit{}, err
			}
		}
	}
	if in.HabitType != nil {
		if next, err = next.WithType(*in.HabitType, now); err != nil {
			return domain.Habit{}, translate(err, nil)
		}
	}
	if in.Logo != nil {
		if next, err = next.WithLogo(*in.Logo, now); err != nil {
			return domain.Habit{}, translate(err, nil)
		}
		if next.Logo, err = s.putImage(ctx, *in.Logo); err != nil {
			return domain.Habit{}, err
		}
	}
	next.UpdatedAt = now

	if err := s.store.UpdateHabit(ctx, next); err != nil {
		if errors.Is(err, database.ErrHabitNameConflict) {
			return domain.Habit{}, nameConflict(next.Name.String(), err)
		}
		return domain.Habit{}, translate(err, refs{"Habit": id})
	}

	s.emit(ctx, eventprocessor.EventHabitUpdated, id, map[string]interface{}{
		"name":      next.Name.String(),
		"habitType": next.Type,
	})
	return s.resolveHabit(ctx, next)
}

// DeleteHabit deactivates the habit. Its actions are kept.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	if err := s.store.DeactivateHabit(ctx, id, s.clock()); err != nil {
		return translate(err, refs{"Habit": id})
	}
	logging.Ctx(ctx).Info().Str("habit_id", id).Msg("Habit deactivated")
	s.emit(ctx, eventprocessor.EventHabitDeactivated, id, nil)
	return nil
}

// IncrementHabitActions bumps the habit's counter and stamps its last
// action date with the current time, without creating an action.
func (s *Service) IncrementHabitActions(ctx context.Context, id string) (domain.Habit, error) {
	if _, err := s.activeHabit(ctx, id); err != nil {
		return domain.Habit{}, err
	}
	h, err := s.store.IncrementHabitActions(ctx, id, s.clock())
	if err != nil {
		return domain.Habit{}, translate(err, refs{"Habit": id})
	}
	metrics.ActionsRecorded.WithLabelValues(string(h.Type)).Inc()
	s.emit(ctx, eventprocessor.EventHabitActionRecorded, id, map[string]interface{}{
		"totalActionsCount": h.TotalActionsCount,
	})
	return s.resolveHabit(ctx, h)
}

// activeHabit loads the habit and fails with a conflict if it is inactive.
func (s *Service) activeHabit(ctx context.Context, id string) (domain.Habit, error) {
	h, err := s.store.GetHabit(ctx, id)
	if err != nil {
		return domain.Habit{}, translate(err, refs{"Habit": id})
	}
	if !h.IsActive {
		return domain.Habit{}, conflict(fmt.Sprintf("Habit with id %s is inactive", id), nil)
	}
	return h, nil
}
