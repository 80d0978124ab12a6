// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package database

import (
	"database/sql"
	"errors"
	"io"
	"strings"

	"github.com/tomtom215/habitline/internal/logging"
)

// Lookup and constraint errors. Callers match them with errors.Is.
var (
	ErrHabitNotFound          = errors.New("habit not found")
	ErrActionNotFound         = errors.New("action not found")
	ErrBookNotFound           = errors.New("book not found")
	ErrReadingSessionNotFound = errors.New("reading session not found")

	ErrHabitNameConflict      = errors.New("an active habit with this name already exists")
	ErrActionAlreadyCompleted = errors.New("action is already completed")
	ErrBookInUse              = errors.New("book is referenced by reading sessions")
)

// closeWithLog closes a resource and logs a failure.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource on an error path where the Close error is
// not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

func rollbackQuietly(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logging.Warn().Err(err).Msg("Failed to roll back transaction")
	}
}

// isUniqueConstraintError reports a UNIQUE or PRIMARY KEY violation.
// modernc reports these as "constraint failed: UNIQUE constraint failed: ...".
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

// isForeignKeyError reports a FOREIGN KEY violation.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// notFound maps sql.ErrNoRows to sentinel and passes other errors through.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}
