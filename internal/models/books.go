// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package models

import (
	"time"

	"github.com/tomtom215/habitline/internal/domain"
)

// BookResponse is the public view of a book.
type BookResponse struct {
	ID                         string    `json:"id"`
	Name                       string    `json:"name"`
	Image                      *string   `json:"image"`
	TotalPages                 int       `json:"totalPages"`
	CurrentPage                int       `json:"currentPage"`
	Progress                   float64   `json:"progress"`
	AverageCharactersPerMinute *float64  `json:"averageCharactersPerMinute"`
	CreatedAt                  time.Time `json:"createdAt"`
	UpdatedAt                  time.Time `json:"updatedAt"`
}

// NewBookResponse converts a domain book. An empty image is rendered as null.
func NewBookResponse(b domain.Book) BookResponse {
	var image *string
	if b.Image != "" {
		img := b.Image
		image = &img
	}
	return BookResponse{
		ID:                         b.ID,
		Name:                       b.Name,
		Image:                      image,
		TotalPages:                 b.TotalPages,
		CurrentPage:                b.CurrentPage,
		Progress:                   b.Progress(),
		AverageCharactersPerMinute: b.AverageCharactersPerMinute,
		CreatedAt:                  b.CreatedAt,
		UpdatedAt:                  b.UpdatedAt,
	}
}
