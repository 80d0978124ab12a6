// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package database

import (
	"context"
	"fmt"
	"time"
)

// ActivityRecord is one row of activity_log. Payload is a JSON object.
type ActivityRecord struct {
	EventID    string
	EventType  string
	EntityType string
	EntityID   string
	OccurredAt time.Time
	Payload    []byte
}

// RecordActivity appends rec to the activity log. Re-recording an event id
// is a no-op, so redelivered events are harmless.
func (db *DB) RecordActivity(ctx context.Context, rec ActivityRecord) (err error) {
	defer observe("insert", "activity_log", time.Now(), &err)

	payload := string(rec.Payload)
	if payload == "" {
		payload = "{}"
	}
	_, err = db.conn.ExecContext(ctx, `INSERT INTO activity_log (
		event_id, event_type, entity_type, entity_id, occurred_at, payload, recorded_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(event_id) DO NOTHING`,
		rec.EventID, rec.EventType, rec.EntityType, rec.EntityID,
		formatTime(rec.OccurredAt), payload, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListActivity returns the newest limit entries.
func (db *DB) ListActivity(ctx context.Context, limit int) (records []ActivityRecord, err error) {
	defer observe("select", "activity_log", time.Now(), &err)

	rows, err := db.conn.QueryContext(ctx, `SELECT
		event_id, event_type, entity_type, entity_id, occurred_at, payload
	FROM activity_log ORDER BY occurred_at DESC, event_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer closeWithLog(rows, "rows")

	records = make([]ActivityRecord, 0, limit)
	for rows.Next() {
		var (
			rec        ActivityRecord
			occurredAt string
			payload    string
		)
		if err := rows.Scan(&rec.EventID, &rec.EventType, &rec.EntityType, &rec.EntityID,
			&occurredAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if rec.OccurredAt, err = parseTime(occurredAt); err != nil {
			return nil, err
		}
		rec.Payload = []byte(payload)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity: %w", err)
	}
	return records, nil
}

// PruneActivity keeps only the newest keep entries and returns how many rows
// were removed.
func (db *DB) PruneActivity(ctx context.Context, keep int) (removed int64, err error) {
	defer observe("delete", "activity_log", time.Now(), &err)

	res, err := db.conn.ExecContext(ctx, `DELETE FROM activity_log WHERE event_id NOT IN (
		SELECT event_id FROM activity_log ORDER BY occurred_at DESC, event_id LIMIT ?
	)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}
	return res.RowsAffected()
}
