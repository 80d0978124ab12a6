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

const sessionColumns = `rs.id, rs.action_id, rs.book_id, rs.number_of_characters, rs.breaths,
	rs.characters_per_minute, rs.breaths_per_minute, rs.using_voice, rs.created_at`

const sessionActionColumns = `a.id, a.habit_id, a.start_time, a.end_time, a.duration_seconds,
	a.action_date, a.created_at, a.updated_at`

// SessionRecord is a reading session together with its action.
type SessionRecord struct {
	Session domain.ReadingSession
	Action  domain.Action
}

// NewReadingSession is the input to RecordReadingSession.
type NewReadingSession struct {
	Action  domain.Action
	Session domain.ReadingSession
	// EndPage, when set, becomes the book's current page.
	EndPage *int
	Now     time.Time
}

// ReadingSessionFilter narrows ListReadingSessions. Empty fields do not filter.
type ReadingSessionFilter struct {
	BookID  string
	HabitID string
}

// RecordReadingSession stores a completed action and its reading session in
// one transaction. It bumps the habit counters, optionally advances the
// book's current page and recomputes the book's average characters per
// minute across all of its sessions. The updated book is returned.
func (db *DB) RecordReadingSession(ctx context.Context, in NewReadingSession) (book domain.Book, err error) {
	defer observe("insert", "reading_sessions", time.Now(), &err)

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertAction(ctx, tx, in.Action); err != nil {
			return err
		}
		if err := incrementHabit(ctx, tx, in.Action.HabitID, in.Action.TimeRange.Start()); err != nil {
			return err
		}
		if err := insertSession(ctx, tx, in.Session); err != nil {
			return err
		}

		now := formatTime(in.Now)
		if in.EndPage != nil {
			res, err := tx.ExecContext(ctx,
				`UPDATE books SET current_page = ?, updated_at = ? WHERE id = ?`,
				*in.EndPage, now, in.Session.BookID)
			if err != nil {
				return fmt.Errorf("failed to advance book page: %w", err)
			}
			if err := requireRow(res, ErrBookNotFound); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, `UPDATE books
			SET average_characters_per_minute = (
				SELECT AVG(characters_per_minute) FROM reading_sessions WHERE book_id = ?
			), updated_at = ?
			WHERE id = ?`, in.Session.BookID, now, in.Session.BookID); err != nil {
			return fmt.Errorf("failed to update book average: %w", err)
		}

		var err error
		book, err = getBook(ctx, tx, in.Session.BookID)
		return err
	})
	return book, err
}

func insertSession(ctx context.Context, q queryer, rs domain.ReadingSession) error {
	_, err := q.ExecContext(ctx, `INSERT INTO reading_sessions (
		id, action_id, book_id, number_of_characters, breaths,
		characters_per_minute, breaths_per_minute, using_voice, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rs.ID, rs.ActionID, rs.BookID, rs.NumberOfCharacters, rs.Breaths,
		rs.CharactersPerMinute, rs.BreathsPerMinute, boolToInt(rs.UsingVoice), formatTime(rs.CreatedAt),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to create reading session: %w", err)
	}
	return nil
}

// GetReadingSession returns the session with id and its action.
func (db *DB) GetReadingSession(ctx context.Context, id string) (rec SessionRecord, err error) {
	defer observe("select", "reading_sessions", time.Now(), &err)

	row := db.conn.QueryRowContext(ctx, `SELECT `+sessionColumns+`, `+sessionActionColumns+`
		FROM reading_sessions rs JOIN actions a ON a.id = rs.action_id
		WHERE rs.id = ?`, id)
	rec, err = scanSessionRecord(row)
	if err != nil {
		return SessionRecord{}, notFound(err, ErrReadingSessionNotFound)
	}
	return rec, nil
}

// ListReadingSessions returns one page of sessions, most recent action first.
func (db *DB) ListReadingSessions(ctx context.Context, filter ReadingSessionFilter, page Page) (records []SessionRecord, total int, err error) {
	defer observe("select", "reading_sessions", time.Now(), &err)

	var (
		where []string
		args  []any
	)
	if filter.BookID != "" {
		where = append(where, "rs.book_id = ?")
		args = append(args, filter.BookID)
	}
	if filter.HabitID != "" {
		where = append(where, "a.habit_id = ?")
		args = append(args, filter.HabitID)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}
	const from = ` FROM reading_sessions rs JOIN actions a ON a.id = rs.action_id`

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*)`+from+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reading sessions: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+sessionColumns+`, `+sessionActionColumns+from+clause+
			` ORDER BY a.start_time DESC, rs.id LIMIT ? OFFSET ?`,
		append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reading sessions: %w", err)
	}
	defer closeWithLog(rows, "rows")

	records = make([]SessionRecord, 0, page.Limit)
	for rows.Next() {
		rec, err := scanSessionRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan reading session: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating reading sessions: %w", err)
	}
	return records, total, nil
}

func scanSessionRecord(s rowScanner) (SessionRecord, error) {
	var (
		rs         domain.ReadingSession
		usingVoice int
		rsCreated  string

		a                    domain.Action
		start                string
		end                  sql.NullString
		duration             sql.NullInt64
		actionDate           string
		createdAt, updatedAt string
	)
	if err := s.Scan(
		&rs.ID, &rs.ActionID, &rs.BookID, &rs.NumberOfCharacters, &rs.Breaths,
		&rs.CharactersPerMinute, &rs.BreathsPerMinute, &usingVoice, &rsCreated,
		&a.ID, &a.HabitID, &start, &end, &duration, &actionDate, &createdAt, &updatedAt,
	); err != nil {
		return SessionRecord{}, err
	}

	var err error
	rs.UsingVoice = usingVoice != 0
	if rs.CreatedAt, err = parseTime(rsCreated); err != nil {
		return SessionRecord{}, err
	}
	if a, err = buildAction(a, start, end, duration, actionDate, createdAt, updatedAt); err != nil {
		return SessionRecord{}, err
	}
	return SessionRecord{Session: rs, Action: a}, nil
}
