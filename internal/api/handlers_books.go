// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"net/http"

	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/models"
	"github.com/tomtom215/habitline/internal/tracker"
)

// CreateBook handles POST /books.
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if berr := h.decodeJSON(w, r, &req); berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	book, err := h.svc.CreateBook(r.Context(), tracker.CreateBookInput{
		Name:                       req.Name,
		Image:                      req.Image,
		TotalPages:                 req.TotalPages,
		CurrentPage:                req.CurrentPage,
		AverageCharactersPerMinute: req.AverageCharactersPerMinute,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, models.NewBookResponse(book))
}

// ListBooks handles GET /books?page&limit.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	q, berr := h.parseListQuery(r)
	if berr == nil {
		berr = validateRequest(&q)
	}
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	page, err := h.svc.ListBooks(r.Context(), h.pageRequest(q))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	data := make([]models.BookResponse, len(page.Items))
	for i, b := range page.Items {
		data[i] = models.NewBookResponse(b)
	}
	respondPage(w, r, data, page.Page, page.Limit, page.Total)
}

// GetBook handles GET /books/{id}.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	book, err := h.svc.GetBook(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, models.NewBookResponse(book))
}

// UpdateBook handles PATCH /books/{id}.
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	var req updateBookRequest
	if berr = h.decodeJSON(w, r, &req); berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	book, err := h.svc.UpdateBook(r.Context(), id, domain.BookPatch{
		Name:                       req.Name,
		Image:                      req.Image,
		TotalPages:                 req.TotalPages,
		CurrentPage:                req.CurrentPage,
		AverageCharactersPerMinute: req.AverageCharactersPerMinute,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, models.NewBookResponse(book))
}

// DeleteBook handles DELETE /books/{id}.
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	if err := h.svc.DeleteBook(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondNoContent(w)
}
