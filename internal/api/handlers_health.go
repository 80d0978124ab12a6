// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/habitline/internal/models"
)

const healthPingTimeout = 2 * time.Second

func (h *Handler) databaseConnected(ctx context.Context) bool {
	if h.svc == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return h.svc.Ping(ctx) == nil
}

// Health reports overall status. It answers 503 when the database is
// unreachable so load balancers can act on the status code alone.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.databaseConnected(r.Context())

	health := models.HealthStatus{
		Status:            "ok",
		Version:           h.version,
		Environment:       h.environment(),
		DatabaseConnected: connected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	status := http.StatusOK
	if !connected {
		health.Status = "error"
		status = http.StatusServiceUnavailable
	}
	respondData(w, r, status, health)
}

// HealthLive answers 200 while the process can serve requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady answers 200 once the database pings.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.databaseConnected(r.Context()) {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Database is not reachable", nil)
		return
	}
	respondData(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound,
		"Route "+r.Method+" "+sanitizeLogValue(r.URL.Path)+" not found", nil)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethod,
		"Method "+r.Method+" not allowed on "+sanitizeLogValue(r.URL.Path), nil)
}
