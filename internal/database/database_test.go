// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/tomtom215/habitline/internal/config"
	"github.com/tomtom215/habitline/internal/domain"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// setupTestDB returns a fresh in-memory database closed at test end.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{Path: ":memory:", BusyTimeout: time.Second})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return db
}

func newTestHabit(t *testing.T, db *DB, id, name string, kind domain.Complexity, createdAt time.Time) domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(id, name, kind, "media:"+id, createdAt)
	if err != nil {
		t.Fatalf("NewHabit(%q): %v", name, err)
	}
	if err := db.CreateHabit(context.Background(), h); err != nil {
		t.Fatalf("CreateHabit(%q): %v", name, err)
	}
	return h
}

func newTestBook(t *testing.T, db *DB, id string, totalPages int, createdAt time.Time) domain.Book {
	t.Helper()
	b, err := domain.NewBook(id, "Book "+id, "", totalPages, 0, nil, createdAt)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	if err := db.CreateBook(context.Background(), b); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	return b
}

func TestNew_AppliesMigrations(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if want := len(Migrations()); version != want {
		t.Errorf("SchemaVersion() = %d, want %d", version, want)
	}

	history, err := db.MigrationHistory(ctx)
	if err != nil {
		t.Fatalf("MigrationHistory: %v", err)
	}
	if len(history) != len(Migrations()) {
		t.Fatalf("history has %d entries, want %d", len(history), len(Migrations()))
	}
	for i, m := range history {
		if m.Version != i+1 {
			t.Errorf("history[%d].Version = %d", i, m.Version)
		}
		if m.AppliedAt.IsZero() {
			t.Errorf("history[%d].AppliedAt is zero", i)
		}
	}

	// A second run finds nothing to do.
	if err := db.runVersionedMigrations(); err != nil {
		t.Fatalf("second migration run: %v", err)
	}
	if again, _ := db.SchemaVersion(ctx); again != version {
		t.Errorf("version changed after re-run: %d -> %d", version, again)
	}
}

func TestNew_FileDatabase(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "habitline.db")
	db, err := New(&config.DatabaseConfig{Path: path, BusyTimeout: time.Second, MaxOpenConns: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	newTestHabit(t, db, "h-file", "Persisted", domain.ComplexitySimple, testNow)
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := New(&config.DatabaseConfig{Path: path, BusyTimeout: time.Second, MaxOpenConns: 2})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	h, err := reopened.GetHabit(context.Background(), "h-file")
	if err != nil {
		t.Fatalf("GetHabit after reopen: %v", err)
	}
	if h.Name.String() != "Persisted" {
		t.Errorf("Name = %q", h.Name)
	}
}

func TestBuildDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		busy     time.Duration
		inMemory bool
		want     string
	}{
		{
			name:     "memory",
			path:     ":memory:",
			inMemory: true,
			want:     "file::memory:?_pragma=foreign_keys(1)",
		},
		{
			name: "file path",
			path: "data/habitline.db",
			busy: 5 * time.Second,
			want: "file:data/habitline.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		},
		{
			name: "dsn with query",
			path: "file:/tmp/h.db?cache=private",
			want: "file:/tmp/h.db?cache=private&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := buildDSN(tt.path, tt.busy, tt.inMemory); got != tt.want {
				t.Errorf("buildDSN() = %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestFormatTime_SortsChronologically(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	times := []time.Time{
		base.Add(time.Nanosecond),
		base,
		base.Add(-time.Hour).In(time.FixedZone("X", 9*3600)),
		base.Add(999 * time.Millisecond),
		base.Add(time.Second),
	}
	formatted := make([]string, len(times))
	for i, tm := range times {
		formatted[i] = formatTime(tm)
	}
	sort.Strings(formatted)

	for i := 1; i < len(formatted); i++ {
		prev, _ := parseTime(formatted[i-1])
		cur, _ := parseTime(formatted[i])
		if !prev.Before(cur) {
			t.Errorf("lexical order broke time order at %d: %s then %s", i, formatted[i-1], formatted[i])
		}
	}
	for _, f := range formatted {
		if len(f) != len(formatted[0]) {
			t.Errorf("width of %q differs from %q", f, formatted[0])
		}
	}
}

func TestParseTime_RoundTripAndFallback(t *testing.T) {
	t.Parallel()

	in := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	got, err := parseTime(formatTime(in))
	if err != nil || !got.Equal(in) {
		t.Fatalf("round trip = %v, %v", got, err)
	}

	if got, err := parseTime("2026-03-14T09:26:53+02:00"); err != nil || got.Hour() != 7 {
		t.Errorf("RFC3339 fallback = %v, %v", got, err)
	}
	if _, err := parseTime("yesterday"); err == nil {
		t.Error("garbage should not parse")
	}
}

func TestPageOffset(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct{ page, limit, want int }{
		{1, 10, 0}, {2, 10, 10}, {3, 25, 50}, {0, 10, 0},
	} {
		if got := (Page{Number: tt.page, Limit: tt.limit}).Offset(); got != tt.want {
			t.Errorf("Page{%d,%d}.Offset() = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestIsConstraintErrors(t *testing.T) {
	t.Parallel()

	if !isUniqueConstraintError(fmt.Errorf("constraint failed: UNIQUE constraint failed: habits.name (2067)")) {
		t.Error("unique violation not detected")
	}
	if isUniqueConstraintError(nil) || isForeignKeyError(nil) {
		t.Error("nil is not a constraint error")
	}
	if !isForeignKeyError(fmt.Errorf("constraint failed: FOREIGN KEY constraint failed (787)")) {
		t.Error("foreign key violation not detected")
	}
	if isForeignKeyError(fmt.Errorf("disk I/O error")) {
		t.Error("unrelated error misdetected")
	}
}
