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

	"github.com/tomtom215/habitline/internal/logging"
)

// Migration is one versioned schema change.
type Migration struct {
	Version     int
	Name        string
	Description string
	SQL         string
	AppliedAt   time.Time // populated when read back from schema_migrations
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version     INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	applied_at  TEXT NOT NULL
);
`

// schemaContext bounds schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// migrations is append-only. Never edit or reorder an entry once released;
// add a new version instead.
var migrations = []Migration{
	{
		Version:     1,
		Name:        "create_habits",
		Description: "Habits with a partial unique index on active names",
		SQL: `
CREATE TABLE habits (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	habit_type          TEXT NOT NULL CHECK (habit_type IN ('Complex', 'Simple', 'Without Intervals')),
	logo_key            TEXT NOT NULL,
	is_active           INTEGER NOT NULL DEFAULT 1,
	total_actions_count INTEGER NOT NULL DEFAULT 0,
	last_action_date    TEXT,
	created_at          TEXT NOT NULL,
	updated_at          TEXT NOT NULL
);
CREATE UNIQUE INDEX idx_habits_active_name ON habits(name) WHERE is_active = 1;
CREATE INDEX idx_habits_created_at ON habits(created_at DESC);
`,
	},
	{
		Version:     2,
		Name:        "create_actions",
		Description: "Time-bounded occurrences of a habit",
		SQL: `
CREATE TABLE actions (
	id               TEXT PRIMARY KEY,
	habit_id         TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	start_time       TEXT NOT NULL,
	end_time         TEXT,
	duration_seconds INTEGER,
	action_date      TEXT NOT NULL,
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);
CREATE INDEX idx_actions_habit_start ON actions(habit_id, start_time DESC);
`,
	},
	{
		Version:     3,
		Name:        "create_books",
		Description: "Tracked books",
		SQL: `
CREATE TABLE books (
	id                            TEXT PRIMARY KEY,
	name                          TEXT NOT NULL,
	image_key                     TEXT,
	total_pages                   INTEGER NOT NULL CHECK (total_pages >= 1),
	current_page                  INTEGER NOT NULL DEFAULT 0 CHECK (current_page >= 0),
	average_characters_per_minute REAL,
	created_at                    TEXT NOT NULL,
	updated_at                    TEXT NOT NULL
);
CREATE INDEX idx_books_created_at ON books(created_at DESC);
`,
	},
	{
		Version:     4,
		Name:        "create_reading_sessions",
		Description: "Reading metrics recorded against an action and a book",
		SQL: `
CREATE TABLE reading_sessions (
	id                    TEXT PRIMARY KEY,
	action_id             TEXT NOT NULL UNIQUE REFERENCES actions(id) ON DELETE CASCADE,
	book_id               TEXT NOT NULL REFERENCES books(id) ON DELETE RESTRICT,
	number_of_characters  INTEGER NOT NULL CHECK (number_of_characters >= 0),
	breaths               INTEGER NOT NULL CHECK (breaths >= 0),
	characters_per_minute REAL NOT NULL,
	breaths_per_minute    REAL NOT NULL,
	using_voice           INTEGER NOT NULL DEFAULT 0,
	created_at            TEXT NOT NULL
);
CREATE INDEX idx_reading_sessions_book ON reading_sessions(book_id, created_at DESC);
`,
	},
	{
		Version:     5,
		Name:        "create_activity_log",
		Description: "Append-only feed of domain events",
		SQL: `
CREATE TABLE activity_log (
	event_id    TEXT PRIMARY KEY,
	event_type  TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id   TEXT NOT NULL,
	occurred_at TEXT NOT NULL,
	payload     TEXT NOT NULL DEFAULT '{}',
	recorded_at TEXT NOT NULL
);
CREATE INDEX idx_activity_log_occurred_at ON activity_log(occurred_at DESC);
`,
	},
}

// Migrations returns the known migrations in version order.
func Migrations() []Migration {
	out := make([]Migration, len(migrations))
	copy(out, migrations)
	return out
}

func (db *DB) getAppliedMigrations(ctx context.Context) (map[int]Migration, error) {
	history, err := db.migrationHistory(ctx)
	if err != nil {
		return nil, err
	}
	applied := make(map[int]Migration, len(history))
	for _, m := range history {
		applied[m.Version] = m
	}
	return applied, nil
}

// runVersionedMigrations applies every migration not yet recorded. Each
// migration and its bookkeeping row commit together.
func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	newMigrations := 0
	for _, m := range migrations {
		if _, ok := applied[m.Version]; ok {
			continue
		}
		err := db.withTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
				return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, name, description, applied_at) VALUES (?, ?, ?, ?)`,
				m.Version, m.Name, m.Description, formatTime(time.Now())); err != nil {
				return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("applied", newMigrations).Msg("Applied database migrations")
	}
	return nil
}

// SchemaVersion returns the highest applied migration version.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// MigrationHistory returns all applied migrations in order.
func (db *DB) MigrationHistory(ctx context.Context) ([]Migration, error) {
	return db.migrationHistory(ctx)
}

func (db *DB) migrationHistory(ctx context.Context) ([]Migration, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var history []Migration
	for rows.Next() {
		var (
			m         Migration
			appliedAt string
		)
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		if m.AppliedAt, err = parseTime(appliedAt); err != nil {
			return nil, fmt.Errorf("migration v%d: %w", m.Version, err)
		}
		history = append(history, m)
	}
	return history, rows.Err()
}
