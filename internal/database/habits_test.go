// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/habitline/internal/domain"
)

func TestCreateAndGetHabit(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	want := newTestHabit(t, db, "h-1", "Meditate", domain.ComplexityWithoutIntervals, testNow)

	got, err := db.GetHabit(ctx, "h-1")
	if err != nil {
		t.Fatalf("GetHabit: %v", err)
	}
	if got.ID != want.ID || !got.Name.Equal(want.Name) || got.Type != want.Type || got.Logo != want.Logo {
		t.Errorf("GetHabit() = %+v, want %+v", got, want)
	}
	if !got.IsActive || got.TotalActionsCount != 0 || got.LastActionDate != nil {
		t.Errorf("defaults not preserved: %+v", got)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, testNow)
	}

	if _, err := db.GetHabit(ctx, "missing"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("GetHabit(missing) err = %v, want ErrHabitNotFound", err)
	}
}

func TestCreateHabit_ActiveNameUnique(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	first := newTestHabit(t, db, "h-1", "Read", domain.ComplexityComplex, testNow)

	dup, _ := domain.NewHabit("h-2", "Read", domain.ComplexitySimple, "media:x", testNow)
	if err := db.CreateHabit(ctx, dup); !errors.Is(err, ErrHabitNameConflict) {
		t.Fatalf("duplicate active name err = %v, want ErrHabitNameConflict", err)
	}

	// Once the first is deactivated its name is free again.
	if err := db.DeactivateHabit(ctx, first.ID, testNow.Add(time.Minute)); err != nil {
		t.Fatalf("DeactivateHabit: %v", err)
	}
	if err := db.CreateHabit(ctx, dup); err != nil {
		t.Fatalf("reusing a deactivated name: %v", err)
	}

	got, err := db.GetActiveHabitByName(ctx, "Read")
	if err != nil {
		t.Fatalf("GetActiveHabitByName: %v", err)
	}
	if got.ID != "h-2" {
		t.Errorf("active habit = %s, want h-2", got.ID)
	}
	if _, err := db.GetActiveHabitByName(ctx, "Nope"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("unknown name err = %v", err)
	}
}

func TestListHabits(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	kinds := []domain.Complexity{domain.ComplexityComplex, domain.ComplexitySimple, domain.ComplexityWithoutIntervals}
	for i := 0; i < 12; i++ {
		newTestHabit(t, db, fmt.Sprintf("h-%02d", i), fmt.Sprintf("Habit %02d", i), kinds[i%3],
			testNow.Add(time.Duration(i)*time.Minute))
	}
	if err := db.DeactivateHabit(ctx, "h-11", testNow.Add(time.Hour)); err != nil {
		t.Fatalf("DeactivateHabit: %v", err)
	}

	active, inactive := true, false
	simple := domain.ComplexitySimple

	tests := []struct {
		name      string
		filter    HabitFilter
		page      Page
		wantTotal int
		wantIDs   []string
	}{
		{
			name:      "first page newest first",
			page:      Page{Number: 1, Limit: 3},
			wantTotal: 12,
			wantIDs:   []string{"h-11", "h-10", "h-09"},
		},
		{
			name:      "last partial page",
			page:      Page{Number: 4, Limit: 5},
			wantTotal: 12,
			wantIDs:   []string{},
		},
		{
			name:      "third page",
			page:      Page{Number: 3, Limit: 5},
			wantTotal: 12,
			wantIDs:   []string{"h-01", "h-00"},
		},
		{
			name:      "active only",
			filter:    HabitFilter{IsActive: &active},
			page:      Page{Number: 1, Limit: 2},
			wantTotal: 11,
			wantIDs:   []string{"h-10", "h-09"},
		},
		{
			name:      "inactive only",
			filter:    HabitFilter{IsActive: &inactive},
			page:      Page{Number: 1, Limit: 10},
			wantTotal: 1,
			wantIDs:   []string{"h-11"},
		},
		{
			name:      "by type",
			filter:    HabitFilter{HabitType: &simple},
			page:      Page{Number: 1, Limit: 10},
			wantTotal: 4,
			wantIDs:   []string{"h-10", "h-07", "h-04", "h-01"},
		},
		{
			name:      "type and active",
			filter:    HabitFilter{HabitType: &simple, IsActive: &active},
			page:      Page{Number: 1, Limit: 1},
			wantTotal: 4,
			wantIDs:   []string{"h-10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habits, total, err := db.ListHabits(ctx, tt.filter, tt.page)
			if err != nil {
				t.Fatalf("ListHabits: %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if len(habits) != len(tt.wantIDs) {
				t.Fatalf("got %d habits, want %d", len(habits), len(tt.wantIDs))
			}
			for i, h := range habits {
				if h.ID != tt.wantIDs[i] {
					t.Errorf("habits[%d] = %s, want %s", i, h.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestUpdateHabit(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	h := newTestHabit(t, db, "h-1", "Walk", domain.ComplexitySimple, testNow)
	newTestHabit(t, db, "h-2", "Swim", domain.ComplexitySimple, testNow)

	later := testNow.Add(time.Hour)
	renamed, _ := h.Rename("Stroll", later)
	renamed, _ = renamed.WithType(domain.ComplexityComplex, later)
	renamed, _ = renamed.WithLogo("media:new", later)
	if err := db.UpdateHabit(ctx, renamed); err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}

	got, _ := db.GetHabit(ctx, "h-1")
	if got.Name.String() != "Stroll" || !got.IsComplex() || got.Logo != "media:new" || !got.UpdatedAt.Equal(later) {
		t.Errorf("after update = %+v", got)
	}

	clash, _ := got.Rename("Swim", later)
	if err := db.UpdateHabit(ctx, clash); !errors.Is(err, ErrHabitNameConflict) {
		t.Errorf("rename onto active name err = %v, want ErrHabitNameConflict", err)
	}

	ghost := renamed
	ghost.ID = "missing"
	if err := db.UpdateHabit(ctx, ghost); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("update missing err = %v, want ErrHabitNotFound", err)
	}
	if err := db.DeactivateHabit(ctx, "missing", later); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("deactivate missing err = %v, want ErrHabitNotFound", err)
	}
}

func TestIncrementHabitActions(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	newTestHabit(t, db, "h-1", "Stretch", domain.ComplexitySimple, testNow)

	at := testNow.Add(2 * time.Hour)
	var got domain.Habit
	var err error
	for i := 0; i < 3; i++ {
		got, err = db.IncrementHabitActions(ctx, "h-1", at)
		if err != nil {
			t.Fatalf("IncrementHabitActions: %v", err)
		}
	}
	if got.TotalActionsCount != 3 {
		t.Errorf("TotalActionsCount = %d, want 3", got.TotalActionsCount)
	}
	if got.LastActionDate == nil || !got.LastActionDate.Equal(at) {
		t.Errorf("LastActionDate = %v, want %v", got.LastActionDate, at)
	}

	if _, err := db.IncrementHabitActions(ctx, "missing", at); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("missing habit err = %v, want ErrHabitNotFound", err)
	}
}
