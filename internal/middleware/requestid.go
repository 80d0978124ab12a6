// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package middleware holds the HTTP middleware shared by every route:
// request ids, access logging and Prometheus instrumentation.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/habitline/internal/logging"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxInboundRequestID bounds ids accepted from upstream proxies.
const maxInboundRequestID = 128

// RequestID assigns a request id, honouring one supplied by an upstream
// proxy, and stores it with a fresh correlation id in the logging context.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" || len(requestID) > maxInboundRequestID {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ctx = logging.ContextWithNewCorrelationID(ctx)

		next(w, r.WithContext(ctx))
	}
}

// GetRequestID returns the request id stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}
