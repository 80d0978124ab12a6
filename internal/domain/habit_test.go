// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package domain

import (
	"strings"
	"testing"
	"time"
)

const testLogo = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func mustHabit(t *testing.T) Habit {
	t.Helper()
	h, err := NewHabit("h-1", "Morning Exercise", ComplexitySimple, testLogo, t0)
	if err != nil {
		t.Fatalf("NewHabit: %v", err)
	}
	return h
}

func TestNewHabit_Defaults(t *testing.T) {
	t.Parallel()

	h := mustHabit(t)
	if !h.IsActive {
		t.Error("new habit should be active")
	}
	if h.TotalActionsCount != 0 {
		t.Errorf("TotalActionsCount = %d, want 0", h.TotalActionsCount)
	}
	if h.LastActionDate != nil {
		t.Error("LastActionDate should be nil")
	}
	if !h.CreatedAt.Equal(t0) || !h.UpdatedAt.Equal(t0) {
		t.Errorf("timestamps = %v/%v, want %v", h.CreatedAt, h.UpdatedAt, t0)
	}
	if !h.IsSimple() || h.IsComplex() || h.IsWithoutIntervals() {
		t.Error("type predicates disagree with ComplexitySimple")
	}
}

func TestNewHabit_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		habitName string
		kind      Complexity
		logo      string
		wantField string
	}{
		{"empty name", "", ComplexitySimple, testLogo, "name"},
		{"long name", strings.Repeat("x", 51), ComplexitySimple, testLogo, "name"},
		{"bad type", "Run", Complexity("Medium"), testLogo, "habitType"},
		{"empty logo", "Run", ComplexityComplex, "  ", "logo"},
		{"oversized logo", "Run", ComplexityComplex, strings.Repeat("a", MaxImageSize+1), "logo"},
		{"html data url", "Run", ComplexitySimple, "data:text/html;base64,PHNjcmlwdD5hbGVydCgxKTwvc2NyaXB0Pg==", "logo"},
		{"svg data url", "Run", ComplexitySimple, "data:image/svg+xml;base64,PHN2Zy8+", "logo"},
		{"data url without type", "Run", ComplexitySimple, "data:;base64,aGk=", "logo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewHabit("id", tt.habitName, tt.kind, tt.logo, t0)
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("error = %v (%T), want *ValidationError", err, err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestNewHabit_LogoAtLimit(t *testing.T) {
	t.Parallel()

	if _, err := NewHabit("id", "Run", ComplexitySimple, strings.Repeat("a", MaxImageSize), t0); err != nil {
		t.Fatalf("logo of exactly 2MB should be accepted: %v", err)
	}
}

func TestIsRasterImageType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mediaType string
		want      bool
	}{
		{"image/png", true},
		{"IMAGE/JPEG", true},
		{" image/webp ", true},
		{"image/svg+xml", false},
		{"image/", false},
		{"text/html", false},
		{"application/octet-stream", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRasterImageType(tt.mediaType); got != tt.want {
			t.Errorf("IsRasterImageType(%q) = %v, want %v", tt.mediaType, got, tt.want)
		}
	}
}

func TestHabit_UpdatesReturnCopies(t *testing.T) {
	t.Parallel()

	h := mustHabit(t)
	later := t0.Add(time.Hour)

	renamed, err := h.Rename("  Evening Walk ", later)
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Name.String() != "Evening Walk" {
		t.Errorf("renamed name = %q", renamed.Name)
	}
	if h.Name.String() != "Morning Exercise" {
		t.Error("Rename must not modify the receiver")
	}
	if !renamed.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", renamed.UpdatedAt, later)
	}

	relogo, err := h.WithLogo("https://example.com/walk.png", later)
	if err != nil {
		t.Fatalf("WithLogo: %v", err)
	}
	if relogo.Logo != "https://example.com/walk.png" || h.Logo != testLogo {
		t.Error("WithLogo should only change the copy")
	}

	retyped, err := h.WithType(ComplexityWithoutIntervals, later)
	if err != nil {
		t.Fatalf("WithType: %v", err)
	}
	if !retyped.IsWithoutIntervals() || !h.IsSimple() {
		t.Error("WithType should only change the copy")
	}

	if _, err := h.Rename("", later); err == nil {
		t.Error("Rename to empty should fail")
	}
	if _, err := h.WithLogo("", later); err == nil {
		t.Error("WithLogo to empty should fail")
	}
	if _, err := h.WithType("nope", later); err == nil {
		t.Error("WithType to unknown should fail")
	}
}

func TestHabit_DeactivateAndRecordAction(t *testing.T) {
	t.Parallel()

	h := mustHabit(t)
	at := t0.Add(2 * time.Hour)

	counted := h.RecordAction(at).RecordAction(at)
	if counted.TotalActionsCount != 2 {
		t.Errorf("TotalActionsCount = %d, want 2", counted.TotalActionsCount)
	}
	if counted.LastActionDate == nil || !counted.LastActionDate.Equal(at) {
		t.Errorf("LastActionDate = %v, want %v", counted.LastActionDate, at)
	}
	if h.TotalActionsCount != 0 {
		t.Error("RecordAction must not modify the receiver")
	}

	off := h.Deactivate(at)
	if off.IsActive {
		t.Error("Deactivate should clear IsActive")
	}
	if !h.IsActive {
		t.Error("Deactivate must not modify the receiver")
	}
}
