// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/habitline/internal/domain"
)

const habitColumns = `id, name, habit_type, logo_key, is_active, total_actions_count,
	last_action_date, created_at, updated_at`

// HabitFilter narrows ListHabits. Nil fields do not filter.
type HabitFilter struct {
	IsActive  *bool
	HabitType *domain.Complexity
}

// CreateHabit inserts h. A clash with another active habit's name returns
// ErrHabitNameConflict.
func (db *DB) CreateHabit(ctx context.Context, h domain.Habit) (err error) {
	defer observe("insert", "habits", time.Now(), &err)

	_, err = db.conn.ExecContext(ctx, `INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name.String(), string(h.Type), h.Logo, boolToInt(h.IsActive), h.TotalActionsCount,
		formatNullTime(h.LastActionDate), formatTime(h.CreatedAt), formatTime(h.UpdatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrHabitNameConflict
		}
		return fmt.Errorf("failed to create habit: %w", err)
	}
	return nil
}

// GetHabit returns the habit with id, active or not.
func (db *DB) GetHabit(ctx context.Context, id string) (h domain.Habit, err error) {
	defer observe("select", "habits", time.Now(), &err)
	return getHabit(ctx, db.conn, id)
}

func getHabit(ctx context.Context, q queryer, id string) (domain.Habit, error) {
	row := q.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err != nil {
		return domain.Habit{}, notFound(err, ErrHabitNotFound)
	}
	return h, nil
}

// GetActiveHabitByName returns the active habit named name.
func (db *DB) GetActiveHabitByName(ctx context.Context, name string) (h domain.Habit, err error) {
	defer observe("select", "habits", time.Now(), &err)

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE name = ? AND is_active = 1`, name)
	h, err = scanHabit(row)
	if err != nil {
		return domain.Habit{}, notFound(err, ErrHabitNotFound)
	}
	return h, nil
}

// ListHabits returns one page of habits, newest first, and the total number
// matching the filter.
func (db *DB) ListHabits(ctx context.Context, filter HabitFilter, page Page) (habits []domain.Habit, total int, err error) {
	defer observe("select", "habits", time.Now(), &err)

	var (
		where []string
		args  []any
	)
	if filter.IsActive != nil {
		where = append(where, "is_active = ?")
		args = append(args, boolToInt(*filter.IsActive))
	}
	if filter.HabitType != nil {
		where = append(where, "habit_type = ?")
		args = append(args, string(*filter.HabitType))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM habits`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count habits: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+habitColumns+` FROM habits`+clause+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list habits: %w", err)
	}
	defer closeWithLog(rows, "rows")

	habits = make([]domain.Habit, 0, page.Limit)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating habits: %w", err)
	}
	return habits, total, nil
}

// UpdateHabit writes the mutable fields of h: name, type, logo key, active
// flag and updated_at.
func (db *DB) UpdateHabit(ctx context.Context, h domain.Habit) (err error) {
	defer observe("update", "habits", time.Now(), &err)

	res, err := db.conn.ExecContext(ctx, `UPDATE habits
		SET name = ?, habit_type = ?, logo_key = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		h.Name.String(), string(h.Type), h.Logo, boolToInt(h.IsActive), formatTime(h.UpdatedAt), h.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrHabitNameConflict
		}
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res, ErrHabitNotFound)
}

// DeactivateHabit soft-deletes the habit.
func (db *DB) DeactivateHabit(ctx context.Context, id string, now time.Time) (err error) {
	defer observe("update", "habits", time.Now(), &err)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE habits SET is_active = 0, updated_at = ? WHERE id = ?`, formatTime(now), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate habit: %w", err)
	}
	return requireRow(res, ErrHabitNotFound)
}

// IncrementHabitActions atomically adds one to the habit's action count and
// sets last_action_date to at. It returns the updated habit.
func (db *DB) IncrementHabitActions(ctx context.Context, id string, at time.Time) (h domain.Habit, err error) {
	defer observe("update", "habits", time.Now(), &err)

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if err := incrementHabit(ctx, tx, id, at); err != nil {
			return err
		}
		var err error
		h, err = getHabit(ctx, tx, id)
		return err
	})
	return h, err
}

func incrementHabit(ctx context.Context, q queryer, id string, at time.Time) error {
	ts := formatTime(at)
	res, err := q.ExecContext(ctx, `UPDATE habits
		SET total_actions_count = total_actions_count + 1, last_action_date = ?, updated_at = ?
		WHERE id = ?`, ts, ts, id)
	if err != nil {
		return fmt.Errorf("failed to increment habit actions: %w", err)
	}
	return requireRow(res, ErrHabitNotFound)
}

func requireRow(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return sentinel
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(s rowScanner) (domain.Habit, error) {
	var (
		h                    domain.Habit
		name, habitType      string
		isActive             int
		lastAction           sql.NullString
		createdAt, updatedAt string
	)
	if err := s.Scan(&h.ID, &name, &habitType, &h.Logo, &isActive, &h.TotalActionsCount,
		&lastAction, &createdAt, &updatedAt); err != nil {
		return domain.Habit{}, err
	}

	n, err := domain.NewHabitName(name)
	if err != nil {
		return domain.Habit{}, fmt.Errorf("habit %s: stored name: %w", h.ID, err)
	}
	h.Name = n
	h.Type = domain.Complexity(habitType)
	h.IsActive = isActive != 0

	if h.LastActionDate, err = parseNullTime(lastAction); err != nil {
		return domain.Habit{}, err
	}
	if h.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Habit{}, err
	}
	if h.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Habit{}, err
	}
	return h, nil
}
