// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/models"
	"github.com/tomtom215/habitline/internal/tracker"
)

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func newMetadata(r *http.Request) models.Metadata {
	return models.Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
}

// respondJSON writes response with the given status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

func respondData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: newMetadata(r),
	})
}

func respondPage(w http.ResponseWriter, r *http.Request, data interface{}, page, limit, total int) {
	meta := newMetadata(r)
	meta.Pagination = models.NewPaginationInfo(page, limit, total)
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: meta,
	})
}

func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// respondError writes an error envelope. err, when set, is logged but never
// sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondErrorDetails(w, r, status, code, message, nil, err)
}

func respondErrorDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", code).
			Str("method", r.Method).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   models.StatusError,
		Data:     nil,
		Metadata: newMetadata(r),
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondServiceError maps a tracker error to its HTTP status.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var te *tracker.Error
	if !errors.As(err, &te) {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, models.InternalErrorMessage, err)
		return
	}

	switch te.Kind {
	case tracker.KindValidation:
		var details map[string]interface{}
		if te.Field != "" {
			details = map[string]interface{}{"field": te.Field}
		}
		respondErrorDetails(w, r, http.StatusBadRequest, models.ErrCodeValidation, te.Message, details, nil)
	case tracker.KindNotFound:
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, te.Message, nil)
	case tracker.KindConflict:
		respondError(w, r, http.StatusConflict, models.ErrCodeConflict, te.Message, nil)
	default:
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, models.InternalErrorMessage, err)
	}
}
