// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package database persists habits, actions, books, reading sessions and the
// activity feed in SQLite through the pure-Go modernc.org/sqlite driver.
//
// Times are stored as fixed-width UTC text (see timeLayout) so that ORDER BY
// on a time column is chronological. Booleans are INTEGER 0/1.
//
// Image columns (habits.logo_key, books.image_key) hold media store keys,
// not image data. The domain values passed in and returned carry those keys
// in their Logo/Image fields; resolving them is the caller's job.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tomtom215/habitline/internal/config"
	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/metrics"
)

// DB wraps the SQLite connection pool.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the database at cfg.Path, applies pending migrations and returns
// a ready handle. ":memory:" gives a private in-memory database.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	inMemory := isMemoryPath(cfg.Path)

	if !inMemory {
		dbDir := filepath.Dir(strings.SplitN(strings.TrimPrefix(cfg.Path, "file:"), "?", 2)[0])
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open("sqlite", buildDSN(cfg.Path, cfg.BusyTimeout, inMemory))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so the pool
	// must never grow past one.
	if inMemory {
		conn.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	db := &DB{conn: conn, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.runVersionedMigrations(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logging.Debug().
		Str("path", cfg.Path).
		Bool("in_memory", inMemory).
		Msg("Database ready")

	return db, nil
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || path == "file::memory:" || strings.Contains(path, "mode=memory")
}

// buildDSN appends the per-connection pragmas to path. The driver applies
// DSN pragmas to every pooled connection, which keeps foreign_keys on.
func buildDSN(path string, busyTimeout time.Duration, inMemory bool) string {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	pragmas := []string{"_pragma=foreign_keys(1)"}
	if busyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("_pragma=busy_timeout(%d)", busyTimeout.Milliseconds()))
	}
	if !inMemory {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)", "_pragma=synchronous(NORMAL)")
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close closes the pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// withTx runs fn inside a transaction, committing on success. fn must only
// use tx; the in-memory pool has a single connection.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		rollbackQuietly(tx)
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// observe records a query's latency and outcome. It is deferred with a
// pointer to the named error result so the final error is seen:
//
//	defer observe("select", "habits", time.Now(), &err)
func observe(operation, table string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}
