// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package domain

import (
	"strings"
	"testing"
)

func TestNewHabitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr string
	}{
		{name: "plain", raw: "Meditate", want: "Meditate"},
		{name: "trimmed", raw: "  Read a book\t", want: "Read a book"},
		{name: "exactly fifty", raw: strings.Repeat("a", 50), want: strings.Repeat("a", 50)},
		{name: "multibyte fifty", raw: strings.Repeat("é", 50), want: strings.Repeat("é", 50)},
		{name: "empty", raw: "", wantErr: "cannot be empty"},
		{name: "whitespace only", raw: "   ", wantErr: "cannot be empty"},
		{name: "fifty one", raw: strings.Repeat("a", 51), wantErr: "cannot exceed 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewHabitName(tt.raw)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("NewHabitName(%q) error = %v, want %q", tt.raw, err, tt.wantErr)
				}
				if !IsValidationError(err) {
					t.Errorf("error should be a ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewHabitName(%q) unexpected error: %v", tt.raw, err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestHabitName_Equal(t *testing.T) {
	t.Parallel()

	a, _ := NewHabitName("Run")
	b, _ := NewHabitName("  Run ")
	c, _ := NewHabitName("Swim")

	if !a.Equal(b) {
		t.Error("names equal after trimming should compare equal")
	}
	if a.Equal(c) {
		t.Error("different names should not compare equal")
	}
	if !(HabitName{}).IsZero() {
		t.Error("zero HabitName should report IsZero")
	}
}

func TestParseComplexity(t *testing.T) {
	t.Parallel()

	for _, c := range Complexities {
		got, err := ParseComplexity(string(c))
		if err != nil || got != c {
			t.Errorf("ParseComplexity(%q) = %q, %v", c, got, err)
		}
	}
	for _, bad := range []string{"", "simple", "Hard", "Without_Intervals"} {
		if _, err := ParseComplexity(bad); err == nil {
			t.Errorf("ParseComplexity(%q) should fail", bad)
		}
	}
}
