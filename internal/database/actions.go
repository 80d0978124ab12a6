// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/habitline/internal/domain"
)

const actionColumns = `id, habit_id, start_time, end_time, duration_seconds, action_date, created_at, updated_at`

// CreateAction inserts a and bumps the owning habit's counters in the same
// transaction. last_action_date is set to the action's start.
func (db *DB) CreateAction(ctx context.Context, a domain.Action) (err error) {
	defer observe("insert", "actions", time.Now(), &err)

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertAction(ctx, tx, a); err != nil {
			return err
		}
		return incrementHabit(ctx, tx, a.HabitID, a.TimeRange.Start())
	})
}

func insertAction(ctx context.Context, q queryer, a domain.Action) error {
	_, err := q.ExecContext(ctx, `INSERT INTO actions (`+actionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.HabitID, formatTime(a.TimeRange.Start()), formatNullTime(a.TimeRange.EndPtr()),
		nullInt64(a.DurationSeconds), a.ActionDate.Format(dateLayout),
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("failed to create action: %w", err)
	}
	return nil
}

// GetAction returns the action with id.
func (db *DB) GetAction(ctx context.Context, id string) (a domain.Action, err error) {
	defer observe("select", "actions", time.Now(), &err)
	return getAction(ctx, db.conn, id)
}

func getAction(ctx context.Context, q queryer, id string) (domain.Action, error) {
	row := q.QueryRowContext(ctx, `SELECT `+actionColumns+` FROM actions WHERE id = ?`, id)
	a, err := scanAction(row)
	if err != nil {
		return domain.Action{}, notFound(err, ErrActionNotFound)
	}
	return a, nil
}

// CompleteAction stores the end time and duration of a completed action.
// The update only applies while end_time is still NULL, so two concurrent
// completions cannot both win.
func (db *DB) CompleteAction(ctx context.Context, a domain.Action) (err error) {
	defer observe("update", "actions", time.Now(), &err)

	end := a.TimeRange.EndPtr()
	if end == nil {
		return fmt.Errorf("action %s has no end time", a.ID)
	}

	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE actions
			SET end_time = ?, duration_seconds = ?, updated_at = ?
			WHERE id = ? AND end_time IS NULL`,
			formatTime(*end), nullInt64(a.DurationSeconds), formatTime(a.UpdatedAt), a.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to complete action: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n > 0 {
			return nil
		}
		// Nothing updated: either the action is gone or it was already done.
		if _, err := getAction(ctx, tx, a.ID); err != nil {
			return err
		}
		return ErrActionAlreadyCompleted
	})
}

// ListActions returns one page of a habit's actions, newest start first.
func (db *DB) ListActions(ctx context.Context, habitID string, page Page) (actions []domain.Action, total int, err error) {
	defer observe("select", "actions", time.Now(), &err)

	if err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM actions WHERE habit_id = ?`, habitID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count actions: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `SELECT `+actionColumns+` FROM actions
		WHERE habit_id = ? ORDER BY start_time DESC, id LIMIT ? OFFSET ?`,
		habitID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list actions: %w", err)
	}
	defer closeWithLog(rows, "rows")

	actions = make([]domain.Action, 0, page.Limit)
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan action: %w", err)
		}
		actions = append(actions, a)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating actions: %w", err)
	}
	return actions, total, nil
}

func scanAction(s rowScanner) (domain.Action, error) {
	var (
		a                    domain.Action
		start                string
		end                  sql.NullString
		duration             sql.NullInt64
		actionDate           string
		createdAt, updatedAt string
	)
	if err := s.Scan(&a.ID, &a.HabitID, &start, &end, &duration, &actionDate, &createdAt, &updatedAt); err != nil {
		return domain.Action{}, err
	}

	return buildAction(a, start, end, duration, actionDate, createdAt, updatedAt)
}

// buildAction fills the parsed time fields of a.
func buildAction(a domain.Action, start string, end sql.NullString, duration sql.NullInt64,
	actionDate, createdAt, updatedAt string) (domain.Action, error) {
	startTime, err := parseTime(start)
	if err != nil {
		return domain.Action{}, err
	}
	endTime, err := parseNullTime(end)
	if err != nil {
		return domain.Action{}, err
	}
	a.TimeRange = domain.RestoreTimeRange(startTime, endTime)
	if duration.Valid {
		d := duration.Int64
		a.DurationSeconds = &d
	}
	if a.ActionDate, err = parseDate(actionDate); err != nil {
		return domain.Action{}, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Action{}, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Action{}, err
	}
	return a, nil
}
