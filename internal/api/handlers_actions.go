// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/habitline/internal/models"
)

// StartAction handles POST /habits/{id}/actions.
func (h *Handler) StartAction(w http.ResponseWriter, r *http.Request) {
	habitID, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	var req startActionRequest
	if berr = h.decodeJSON(w, r, &req); berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	start, berr := parseTime("startTime", req.StartTime)
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	var end *time.Time
	if req.EndTime != nil {
		t, berr := parseTime("endTime", *req.EndTime)
		if berr != nil {
			respondRequestError(w, r, berr)
			return
		}
		end = &t
	}

	action, err := h.svc.StartAction(r.Context(), habitID, start, end)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, models.NewActionResponse(action))
}

// ListHabitActions handles GET /habits/{id}/actions?page&limit.
func (h *Handler) ListHabitActions(w http.ResponseWriter, r *http.Request) {
	habitID, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	q, berr := h.parseListQuery(r)
	if berr == nil {
		berr = validateRequest(&q)
	}
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	page, err := h.svc.ListHabitActions(r.Context(), habitID, h.pageRequest(q))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	data := make([]models.ActionResponse, len(page.Items))
	for i, a := range page.Items {
		data[i] = models.NewActionResponse(a)
	}
	respondPage(w, r, data, page.Page, page.Limit, page.Total)
}

// GetAction handles GET /actions/{id}.
func (h *Handler) GetAction(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	action, err := h.svc.GetAction(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, models.NewActionResponse(action))
}

// CompleteAction handles POST /actions/{id}/complete.
func (h *Handler) CompleteAction(w http.ResponseWriter, r *http.Request) {
	id, berr := pathID(r, "id")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	var req completeActionRequest
	if berr = h.decodeJSON(w, r, &req); berr != nil {
		respondRequestError(w, r, berr)
		return
	}
	end, berr := parseTime("endTime", req.EndTime)
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	action, err := h.svc.CompleteAction(r.Context(), id, end)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, models.NewActionResponse(action))
}
