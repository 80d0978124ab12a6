// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package domain

import (
	"fmt"
	"time"
)

// Book is a tracked book.
type Book struct {
	ID                         string
	Name                       string
	Image                      string
	TotalPages                 int
	CurrentPage                int
	AverageCharactersPerMinute *float64
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// BookPatch carries optional book changes; nil fields are left alone.
type BookPatch struct {
	Name                       *string
	Image                      *string
	TotalPages                 *int
	CurrentPage                *int
	AverageCharactersPerMinute *float64
}

// NewBook validates and builds a book.
func NewBook(id, name, image string, totalPages, currentPage int, avgCPM *float64, now time.Time) (Book, error) {
	b := Book{
		ID:                         id,
		Name:                       name,
		Image:                      image,
		TotalPages:                 totalPages,
		CurrentPage:                currentPage,
		AverageCharactersPerMinute: avgCPM,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if err := b.normalize(); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Apply returns a copy with p applied and re-validated.
func (b Book) Apply(p BookPatch, now time.Time) (Book, error) {
	next := b
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Image != nil {
		next.Image = *p.Image
	}
	if p.TotalPages != nil {
		next.TotalPages = *p.TotalPages
	}
	if p.CurrentPage != nil {
		next.CurrentPage = *p.CurrentPage
	}
	if p.AverageCharactersPerMinute != nil {
		v := *p.AverageCharactersPerMinute
		next.AverageCharactersPerMinute = &v
	}
	if err := next.normalize(); err != nil {
		return b, err
	}
	next.UpdatedAt = now
	return next, nil
}

// Progress is the read percentage, 0 to 100.
func (b Book) Progress() float64 {
	if b.TotalPages <= 0 {
		return 0
	}
	return float64(b.CurrentPage) / float64(b.TotalPages) * 100
}

func (b *Book) normalize() error {
	name, err := normalizeName("name", "book name", b.Name)
	if err != nil {
		return err
	}
	b.Name = name
	if err := ValidateImage("image", b.Image, false); err != nil {
		return err
	}
	if b.TotalPages < 1 {
		return invalid("totalPages", "total pages must be at least 1")
	}
	if b.CurrentPage < 0 || b.CurrentPage > b.TotalPages {
		return invalid("currentPage", fmt.Sprintf("current page must be between 0 and %d", b.TotalPages))
	}
	if b.AverageCharactersPerMinute != nil && *b.AverageCharactersPerMinute < 0 {
		return invalid("averageCharactersPerMinute", "average characters per minute cannot be negative")
	}
	return nil
}
