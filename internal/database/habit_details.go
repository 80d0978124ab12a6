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

// ActionDetail is an action with the reading session and book recorded for
// it, when there is one.
type ActionDetail struct {
	Action  domain.Action
	Session *domain.ReadingSession
	Book    *domain.Book
}

// ListActionDetails returns a habit's most recent actions, newest start
// first, each joined with its reading session and book.
func (db *DB) ListActionDetails(ctx context.Context, habitID string, limit int) (details []ActionDetail, err error) {
	defer observe("select", "actions", time.Now(), &err)

	rows, err := db.conn.QueryContext(ctx, `SELECT
		a.id, a.habit_id, a.start_time, a.end_time, a.duration_seconds, a.action_date, a.created_at, a.updated_at,
		rs.id, rs.book_id, rs.number_of_characters, rs.breaths, rs.characters_per_minute,
		rs.breaths_per_minute, rs.using_voice, rs.created_at,
		b.id, b.name, b.image_key, b.total_pages, b.current_page, b.average_characters_per_minute,
		b.created_at, b.updated_at
	FROM actions a
	LEFT JOIN reading_sessions rs ON rs.action_id = a.id
	LEFT JOIN books b ON b.id = rs.book_id
	WHERE a.habit_id = ?
	ORDER BY a.start_time DESC, a.id
	LIMIT ?`, habitID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list action details: %w", err)
	}
	defer closeWithLog(rows, "rows")

	details = make([]ActionDetail, 0)
	for rows.Next() {
		d, err := scanActionDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action detail: %w", err)
		}
		details = append(details, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating action details: %w", err)
	}
	return details, nil
}

func scanActionDetail(s rowScanner) (ActionDetail, error) {
	var (
		a                    domain.Action
		start                string
		end                  sql.NullString
		duration             sql.NullInt64
		actionDate           string
		createdAt, updatedAt string

		rsID, rsBookID, rsCreated sql.NullString
		rsChars, rsBreaths        sql.NullInt64
		rsCPM, rsBPM              sql.NullFloat64
		rsVoice                   sql.NullInt64

		bID, bName, bImage, bCreated, bUpdated sql.NullString
		bTotal, bCurrent                       sql.NullInt64
		bAvg                                   sql.NullFloat64
	)
	if err := s.Scan(
		&a.ID, &a.HabitID, &start, &end, &duration, &actionDate, &createdAt, &updatedAt,
		&rsID, &rsBookID, &rsChars, &rsBreaths, &rsCPM, &rsBPM, &rsVoice, &rsCreated,
		&bID, &bName, &bImage, &bTotal, &bCurrent, &bAvg, &bCreated, &bUpdated,
	); err != nil {
		return ActionDetail{}, err
	}

	a, err := buildAction(a, start, end, duration, actionDate, createdAt, updatedAt)
	if err != nil {
		return ActionDetail{}, err
	}
	d := ActionDetail{Action: a}

	if rsID.Valid {
		rs := domain.ReadingSession{
			ID:                  rsID.String,
			ActionID:            a.ID,
			BookID:              rsBookID.String,
			NumberOfCharacters:  int(rsChars.Int64),
			Breaths:             int(rsBreaths.Int64),
			CharactersPerMinute: rsCPM.Float64,
			BreathsPerMinute:    rsBPM.Float64,
			UsingVoice:          rsVoice.Int64 != 0,
		}
		if rs.CreatedAt, err = parseTime(rsCreated.String); err != nil {
			return ActionDetail{}, err
		}
		d.Session = &rs
	}

	if bID.Valid {
		b := domain.Book{
			ID:          bID.String,
			Name:        bName.String,
			Image:       bImage.String,
			TotalPages:  int(bTotal.Int64),
			CurrentPage: int(bCurrent.Int64),
		}
		if bAvg.Valid {
			v := bAvg.Float64
			b.AverageCharactersPerMinute = &v
		}
		if b.CreatedAt, err = parseTime(bCreated.String); err != nil {
			return ActionDetail{}, err
		}
		if b.UpdatedAt, err = parseTime(bUpdated.String); err != nil {
			return ActionDetail{}, err
		}
		d.Book = &b
	}
	return d, nil
}
