// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/habitline/internal/database"
	"github.com/tomtom215/habitline/internal/logging"
)

// runMigrate opens the database, which applies pending migrations, and
// prints the resulting history.
func runMigrate(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	defer closeWithLog(db, "database")

	history, err := db.MigrationHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to read migration history: %w", err)
	}
	for _, m := range history {
		_, _ = fmt.Fprintf(out, "v%d\t%s\t%s\n", m.Version, m.Name, m.AppliedAt.Format(time.RFC3339))
	}

	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logging.Info().Int("schema_version", current).Str("path", cfg.Database.Path).Msg("Database schema is up to date")
	return nil
}
