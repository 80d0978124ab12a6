// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/habitline/internal/domain"
	"github.com/tomtom215/habitline/internal/models"
	"github.com/tomtom215/habitline/internal/tracker"
	"github.com/tomtom215/habitline/internal/validation"
)

// Request bodies. Field rules that need stored state (name clashes, page
// bounds of a book) are left to the tracker.

type createHabitRequest struct {
	Name      string `json:"name" validate:"required,notblank"`
	HabitType string `json:"habitType" validate:"required,habit_complexity"`
	Logo      string `json:"logo" validate:"required,notblank"`
}

type updateHabitRequest struct {
	Name      *string `json:"name" validate:"omitnil,notblank"`
	Logo      *string `json:"logo" validate:"omitnil,notblank"`
	HabitType *string `json:"habitType" validate:"omitnil,habit_complexity"`
}

type startActionRequest struct {
	StartTime string  `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   *string `json:"endTime" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
}

type completeActionRequest struct {
	EndTime string `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type createBookRequest struct {
	Name                       string   `json:"name" validate:"required,notblank"`
	Image                      string   `json:"image"`
	TotalPages                 int      `json:"totalPages" validate:"gte=1"`
	CurrentPage                int      `json:"currentPage" validate:"gte=0"`
	AverageCharactersPerMinute *float64 `json:"averageCharactersPerMinute" validate:"omitnil,gte=0"`
}

type updateBookRequest struct {
	Name                       *string  `json:"name" validate:"omitnil,notblank"`
	Image                      *string  `json:"image"`
	TotalPages                 *int     `json:"totalPages" validate:"omitnil,gte=1"`
	CurrentPage                *int     `json:"currentPage" validate:"omitnil,gte=0"`
	AverageCharactersPerMinute *float64 `json:"averageCharactersPerMinute" validate:"omitnil,gte=0"`
}

type recordReadingSessionRequest struct {
	HabitID            string `json:"habitId" validate:"required,uuid"`
	BookID             string `json:"bookId" validate:"required,uuid"`
	StartTime          string `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime            string `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	NumberOfCharacters int    `json:"numberOfCharacters" validate:"gte=0"`
	Breaths            int    `json:"breaths" validate:"gte=0"`
	UsingVoice         bool   `json:"usingVoice"`
	EndPage            *int   `json:"endPage" validate:"omitnil,gte=0"`
}

// listQuery holds the paging parameters shared by list endpoints. Zero
// means "not given".
type listQuery struct {
	Page  int `json:"page" validate:"omitempty,gte=1"`
	Limit int `json:"limit" validate:"omitempty,gte=1"`
}

type habitListQuery struct {
	listQuery
	HabitType string `json:"habitType" validate:"omitempty,habit_complexity"`
}

type sessionListQuery struct {
	listQuery
	BookID  string `json:"bookId" validate:"omitempty,uuid"`
	HabitID string `json:"habitId" validate:"omitempty,uuid"`
}

// badRequest is returned by the parsing helpers; handlers pass it straight
// to respondRequestError.
type badRequest struct {
	code    string
	message string
	details map[string]interface{}
	status  int
}

func (e *badRequest) Error() string { return e.message }

func invalidField(field, message string) *badRequest {
	return &badRequest{
		code:    models.ErrCodeValidation,
		message: message,
		details: map[string]interface{}{"field": field},
		status:  http.StatusBadRequest,
	}
}

func respondRequestError(w http.ResponseWriter, r *http.Request, err *badRequest) {
	respondErrorDetails(w, r, err.status, err.code, err.message, err.details, nil)
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) *badRequest {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes())
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return &badRequest{
				code:    models.ErrCodeTooLarge,
				message: fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit),
				status:  http.StatusRequestEntityTooLarge,
			}
		case errors.Is(err, io.EOF):
			return &badRequest{code: models.ErrCodeBadRequest, message: "Request body is required", status: http.StatusBadRequest}
		default:
			return &badRequest{code: models.ErrCodeBadRequest, message: "Invalid JSON in request body", status: http.StatusBadRequest}
		}
	}
	return validateRequest(dst)
}

// validateRequest runs the struct rules and renders the VALIDATION_ERROR
// shape.
func validateRequest(v interface{}) *badRequest {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	apiErr := verr.ToAPIError()
	return &badRequest{
		code:    apiErr.Code,
		message: apiErr.Message,
		details: apiErr.Details,
		status:  http.StatusBadRequest,
	}
}

// pathID reads a UUID path parameter.
func pathID(r *http.Request, name string) (string, *badRequest) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", invalidField(name, fmt.Sprintf("%s must be a valid UUID", name))
	}
	return id.String(), nil
}

// queryInt parses an optional integer query parameter. Missing means 0.
func queryInt(r *http.Request, key string) (int, *badRequest) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidField(key, fmt.Sprintf("%s must be an integer", key))
	}
	return n, nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, key string) (*bool, *badRequest) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidField(key, fmt.Sprintf("%s must be true or false", key))
	}
	return &b, nil
}

func (h *Handler) parseListQuery(r *http.Request) (listQuery, *badRequest) {
	var q listQuery
	var berr *badRequest
	if q.Page, berr = queryInt(r, "page"); berr != nil {
		return q, berr
	}
	if q.Limit, berr = queryInt(r, "limit"); berr != nil {
		return q, berr
	}
	if maxSize := h.maxPageSize(); q.Limit > maxSize {
		return q, invalidField("limit", fmt.Sprintf("limit must be at most %d", maxSize))
	}
	return q, nil
}

func (h *Handler) maxPageSize() int {
	if h.config == nil || h.config.API.MaxPageSize < 1 {
		return tracker.MaxPageSize
	}
	return h.config.API.MaxPageSize
}

// pageRequest fills in the configured default page size.
func (h *Handler) pageRequest(q listQuery) tracker.PageRequest {
	limit := q.Limit
	if limit == 0 && h.config != nil {
		limit = h.config.API.DefaultPageSize
	}
	return tracker.PageRequest{Page: q.Page, Limit: limit}
}

// parseTime parses a value already checked by the datetime rule.
func parseTime(field, value string) (time.Time, *badRequest) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, invalidField(field, fmt.Sprintf("%s must be a valid date/time in RFC3339 format", field))
	}
	return t.UTC(), nil
}

func complexityPtr(s *string) *domain.Complexity {
	if s == nil {
		return nil
	}
	c := domain.Complexity(*s)
	return &c
}
