// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/habitline/internal/logging"
)

// SlowRequestThreshold marks requests logged at warn level.
const SlowRequestThreshold = time.Second

// AccessLog writes one structured line per request. Server errors and slow
// requests are raised to warn/error; everything else is logged at info.
func AccessLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next(rec, r)

		duration := time.Since(start)
		logger := logging.Ctx(r.Context())

		var event *zerolog.Event
		switch {
		case rec.statusCode >= http.StatusInternalServerError:
			event = logger.Error()
		case duration > SlowRequestThreshold:
			event = logger.Warn().Bool("slow", true)
		default:
			event = logger.Info()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.statusCode).
			Int("bytes", rec.bytes).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP request")
	}
}
