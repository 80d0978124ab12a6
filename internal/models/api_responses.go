// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package models

import "time"

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in APIError.Code.
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeConflict    = "CONFLICT"
	ErrCodeMethod      = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeTooLarge    = "PAYLOAD_TOO_LARGE"
)

// InternalErrorMessage replaces the text of unexpected errors.
const InternalErrorMessage = "An unexpected error occurred"

// APIResponse wraps every HTTP response body.
//
// Status is "success" with Data populated, or "error" with Error populated.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp  time.Time       `json:"timestamp"`
	RequestID  string          `json:"request_id,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// APIError describes a failed request.
//
//	{
//	  "code": "VALIDATION_ERROR",
//	  "message": "habit name cannot exceed 50 characters",
//	  "details": {"field": "name"}
//	}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationInfo is the page/limit/total block of a list response.
// TotalPages is ceil(Total/Limit).
type PaginationInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPaginationInfo fills in TotalPages.
func NewPaginationInfo(page, limit, total int) *PaginationInfo {
	p := &PaginationInfo{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.TotalPages = (total + limit - 1) / limit
	}
	return p
}
