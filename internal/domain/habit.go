// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package domain

import (
	"strings"
	"time"
)

// MaxImageSize bounds logos and cover images, in bytes of their string form.
const MaxImageSize = 2 * 1024 * 1024

// Habit is a tracked recurring activity.
type Habit struct {
	ID                string
	Name              HabitName
	Type              Complexity
	Logo              string
	IsActive          bool
	TotalActionsCount int
	LastActionDate    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewHabit validates and builds an active habit with no recorded actions.
func NewHabit(id, name string, habitType Complexity, logo string, now time.Time) (Habit, error) {
	n, err := NewHabitName(name)
	if err != nil {
		return Habit{}, err
	}
	if !habitType.Valid() {
		return Habit{}, invalid("habitType", "habit type must be one of Complex, Simple, Without Intervals")
	}
	if err := ValidateImage("logo", logo, true); err != nil {
		return Habit{}, err
	}
	return Habit{
		ID:        id,
		Name:      n,
		Type:      habitType,
		Logo:      logo,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename returns a copy with a new name.
func (h Habit) Rename(name string, now time.Time) (Habit, error) {
	n, err := NewHabitName(name)
	if err != nil {
		return h, err
	}
	h.Name = n
	h.UpdatedAt = now
	return h, nil
}

// WithLogo returns a copy with a new logo.
func (h Habit) WithLogo(logo string, now time.Time) (Habit, error) {
	if err := ValidateImage("logo", logo, true); err != nil {
		return h, err
	}
	h.Logo = logo
	h.UpdatedAt = now
	return h, nil
}

// WithType returns a copy with a new complexity.
func (h Habit) WithType(t Complexity, now time.Time) (Habit, error) {
	if !t.Valid() {
		return h, invalid("habitType", "habit type must be one of Complex, Simple, Without Intervals")
	}
	h.Type = t
	h.UpdatedAt = now
	return h, nil
}

// Deactivate returns an inactive copy. Deactivating twice is harmless.
func (h Habit) Deactivate(now time.Time) Habit {
	h.IsActive = false
	h.UpdatedAt = now
	return h
}

// RecordAction returns a copy with one more action, performed at "at".
func (h Habit) RecordAction(at time.Time) Habit {
	h.TotalActionsCount++
	t := at
	h.LastActionDate = &t
	h.UpdatedAt = at
	return h
}

func (h Habit) IsComplex() bool          { return h.Type == ComplexityComplex }
func (h Habit) IsSimple() bool           { return h.Type == ComplexitySimple }
func (h Habit) IsWithoutIntervals() bool { return h.Type == ComplexityWithoutIntervals }

// ValidateImage checks a logo or cover value. Empty values are rejected
// only when required.
func ValidateImage(field, value string, required bool) error {
	if strings.TrimSpace(value) == "" {
		if required {
			return invalid(field, field+" cannot be empty")
		}
		return nil
	}
	if len(value) > MaxImageSize {
		return invalid(field, field+" size cannot exceed 2MB")
	}
	if header, ok := strings.CutPrefix(value, "data:"); ok {
		mediaType, _, _ := strings.Cut(header, ",")
		mediaType, _, _ = strings.Cut(mediaType, ";")
		if !IsRasterImageType(mediaType) {
			return invalid(field, field+" must be a PNG, JPEG, GIF, WebP or other raster image")
		}
	}
	return nil
}

// IsRasterImageType reports whether mediaType is an image/* type that
// browsers cannot execute. SVG is excluded because it can carry script.
func IsRasterImageType(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "image/svg+xml" {
		return false
	}
	sub, ok := strings.CutPrefix(mediaType, "image/")
	return ok && sub != ""
}
