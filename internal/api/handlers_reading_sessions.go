// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"net/http"

	"github.com/tomtom215/habitline/internal/models"
	"github.com/tomtom215/habitline/internal/tracker"
)

// readingSessionRecorded is the body of a successful POST /reading-sessions.
type readingSessionRecorded struct {
	models.ReadingSessionResponse
	Book models.BookResponse `json:"book"`
}

// RecordReadingSession handles POST /reading-sessions.
func (h *Handler) RecordReadingSession(w http.ResponseWriter, r *http.Request) {
	var req recordReadingSessionRequest
	if berr := h.decodeJSON(w, r, &req); berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	start, berr := parseTime("startTime", req.StartTime)
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	end, berr := parseTime("endTime", req.EndTime)
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	res, err := h.svc.RecordReadingSession(r.Context(), tracker.RecordReadingSessionInput{
		HabitID:            req.HabitID,
		BookID:             req.BookID,
		StartTime:          start,
		EndTime:            end,
		NumberOfCharacters: req.NumberOfCharacters,
		Breaths:            req.Breaths,
		UsingVoice:         req.UsingVoice,
		EndPage:            req.EndPage,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, readingSessionRecorded{
		ReadingSessionResponse: models.NewReadingSessionResponse(res.Session).WithAction(res.Action),
		Book:                   models.NewBookResponse(res.Book),
	})
}

// ListReadingSessions handles GET /reading-sessions?page&limit&bookId&habitId.
func (h *Handler) ListReadingSessions(w http.ResponseWriter, r *http.Request) {
	base, berr := h.parseListQuery(r)
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	q := sessionListQuery{
		listQuery: base,
		BookID:    r.URL.Query().Get("bookId"),
		HabitID:   r.URL.Query().Get("habitId"),
	}
	if berr = validateRequest(&q); berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	page, err := h.svc.ListReadingSessions(r.Context(), tracker.ReadingSessionQuery{
		PageRequest: h.pageRequest(q.listQuery),
		BookID:      q.BookID,
		HabitID:     q.HabitID,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	data := make([]models.ReadingSessionResponse, len(page.Items))
	for i, rec := range page.Items {
		data[i] = models.NewReadingSessionResponse(rec.Session).WithAction(rec.Action)
	}
	respondPage(w, r, data, page.Page, page.Limit, page.Total)
}

// GetReadingSession handles GET /reading-sessions/{id}.
func (h *Handler) GetReadingSession(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	rec, err := h.svc.GetReadingSession(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, models.NewReadingSessionResponse(rec.Session).WithAction(rec.Action))
}
