// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/habitline/internal/models"
)

// ListActivity handles GET /activity?limit. Entries are newest first.
func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit, berr := queryInt(r, "limit")
	if berr != nil {
		respondRequestError(w, r, berr)
		return
	}

	records, err := h.svc.ListActivity(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	data := make([]models.ActivityEntry, len(records))
	for i, rec := range records {
		data[i] = models.ActivityEntry{
			EventID:    rec.EventID,
			Type:       rec.EventType,
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			OccurredAt: rec.OccurredAt,
			Payload:    json.RawMessage(rec.Payload),
		}
	}
	respondData(w, r, http.StatusOK, data)
}
