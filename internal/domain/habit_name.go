// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength bounds habit and book names, counted in characters.
const MaxNameLength = 50

// HabitName is a trimmed, non-empty name of at most MaxNameLength characters.
type HabitName struct {
	value string
}

// NewHabitName trims raw and validates its length.
func NewHabitName(raw string) (HabitName, error) {
	v, err := normalizeName("name", "habit name", raw)
	if err != nil {
		return HabitName{}, err
	}
	return HabitName{value: v}, nil
}

func (n HabitName) String() string { return n.value }

// Equal compares trimmed values.
func (n HabitName) Equal(other HabitName) bool { return n.value == other.value }

// IsZero reports whether n was never constructed.
func (n HabitName) IsZero() bool { return n.value == "" }

func normalizeName(field, label, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", invalid(field, label+" cannot be empty")
	}
	if utf8.RuneCountInString(v) > MaxNameLength {
		return "", invalid(field, fmt.Sprintf("%s cannot exceed %d characters", label, MaxNameLength))
	}
	return v, nil
}
