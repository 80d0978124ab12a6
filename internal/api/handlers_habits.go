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

// CreateHabit handles POST /habits.
func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if berr := h.decodeJSON(w, r, &req); berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	habit, err := h.svc.CreateHabit(r.Context(), tracker.CreateHabitInput{
		Name:      req.Name,
		HabitType: domain.Complexity(req.HabitType),
		Logo:      req.Logo,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, models.NewHabitResponse(habit))
}

// ListHabits handles GET /habits?page&limit&isActive&habitType.
func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	base, berr := h.parseListQuery(r)
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	q := habitListQuery{listQuery: base, HabitType: r.URL.Query().Get("habitType")}
	if berr = validateRequest(&q); berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	isActive, berr := queryBool(r, "isActive")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	query := tracker.HabitQuery{PageRequest: h.pageRequest(q.listQuery), IsActive: isActive}
	if q.HabitType != "" {
		query.HabitType = complexityPtr(&q.HabitType)
	}

	page, err := h.svc.ListHabits(r.Context(), query)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	data := make([]models.HabitResponse, len(page.Items))
	for i, habit := range page.Items {
		data[i] = models.NewHabitResponse(habit)
	}
	respondPage(w, r, data, page.Page, page.Limit, page.Total)
}

// GetHabit handles GET /habits/{id}.
func (h *Handler) GetHabit(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	habit, err := h.svc.GetHabit(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, models.NewHabitResponse(habit))
}

// GetHabitDetails handles GET /habits/{id}/details.
func (h *Handler) GetHabitDetails(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	details, err := h.svc.GetHabitDetails(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, newHabitDetails(details))
}

func newHabitDetails(d tracker.HabitDetails) models.HabitDetails {
	out := models.HabitDetails{
		HabitResponse: models.NewHabitResponse(d.Habit),
		Actions:       make([]models.ActionDetails, len(d.Actions)),
	}
	for i, a := range d.Actions {
		ad := models.ActionDetails{ActionResponse: models.NewActionResponse(a.Action)}
		if a.Session != nil {
			rs := models.NewReadingSessionResponse(*a.Session)
			ad.ReadingSession = &rs
		}
		if a.Book != nil {
			b := models.NewBookResponse(*a.Book)
			ad.Book = &b
		}
		out.Actions[i] = ad
	}
	return out
}

// UpdateHabit handles PATCH /habits/{id}.
func (h *Handler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	var req updateHabitRequest
	if berr := h.decodeJSON(w, r, &req); berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	habit, err := h.svc.UpdateHabit(r.Context(), id, tracker.UpdateHabitInput{
		Name:      req.Name,
		Logo:      req.Logo,
		HabitType: complexityPtr(req.HabitType),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, models.NewHabitResponse(habit))
}

// DeleteHabit handles DELETE /habits/{id}. The habit is deactivated, not
// removed.
func (h *Handler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	if err := h.svc.DeleteHabit(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondNoContent(w)
}

// IncrementHabitActions handles POST /habits/{id}/increment-action.
func (h *Handler) IncrementHabitActions(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	habit, err := h.svc.IncrementHabitActions(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, models.NewHabitResponse(habit))
}
