// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package validation

import (
	"strings"
	"testing"
)

type habitInput struct {
	Name      string  `json:"name" validate:"notblank,max=50"`
	HabitType string  `json:"habitType" validate:"habit_complexity"`
	Logo      *string `json:"logo" validate:"omitempty,notblank"`
	Limit     int     `json:"limit" validate:"min=1,max=100"`
	Skipped   string  `json:"-"`
}

func strptr(s string) *string { return &s }

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     habitInput
		wantField string
		wantTag   string
	}{
		{
			name:  "valid",
			input: habitInput{Name: "Run", HabitType: "Simple", Limit: 10},
		},
		{
			name:  "valid with logo",
			input: habitInput{Name: "Run", HabitType: "Without Intervals", Logo: strptr("data:x"), Limit: 1},
		},
		{
			name:      "blank name",
			input:     habitInput{Name: "   ", HabitType: "Simple", Limit: 10},
			wantField: "name",
			wantTag:   "notblank",
		},
		{
			name:      "long name",
			input:     habitInput{Name: strings.Repeat("n", 51), HabitType: "Simple", Limit: 10},
			wantField: "name",
			wantTag:   "max",
		},
		{
			name:      "unknown complexity",
			input:     habitInput{Name: "Run", HabitType: "simple", Limit: 10},
			wantField: "habitType",
			wantTag:   "habit_complexity",
		},
		{
			name:      "blank logo",
			input:     habitInput{Name: "Run", HabitType: "Complex", Logo: strptr(" "), Limit: 10},
			wantField: "logo",
			wantTag:   "notblank",
		},
		{
			name:      "limit too large",
			input:     habitInput{Name: "Run", HabitType: "Complex", Limit: 101},
			wantField: "limit",
			wantTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected a validation error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("got %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError_Single(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&habitInput{Name: "", HabitType: "Simple", Limit: 5})
	if verr == nil {
		t.Fatal("expected a validation error")
	}
	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if apiErr.Message != "name cannot be empty" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "name" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestToAPIError_Multiple(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&habitInput{Name: "", HabitType: "Hard", Limit: 0})
	if verr == nil {
		t.Fatal("expected a validation error")
	}
	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
	}
	for _, want := range []string{"name cannot be empty", "habitType must be one of", "limit must be at least 1"} {
		if !strings.Contains(apiErr.Message, want) {
			t.Errorf("Message %q missing %q", apiErr.Message, want)
		}
	}
}

func TestToAPIError_Empty(t *testing.T) {
	t.Parallel()

	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Message != "Validation failed" || apiErr.Details != nil {
		t.Errorf("got %+v", apiErr)
	}
}
