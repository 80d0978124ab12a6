// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package metrics registers Habitline's Prometheus collectors.
//
// Collectors are package-level and registered through promauto, so importing
// the package is enough to expose them on /metrics. Callers use the Record*
// helpers rather than touching the vectors directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitline_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habitline_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habitline_http_requests_in_flight",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	APIRateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habitline_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Database
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habitline_db_query_duration_seconds",
			Help:    "Duration of SQLite queries in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitline_db_query_errors_total",
			Help: "Total number of failed SQLite queries",
		},
		[]string{"operation", "table"},
	)

	// Domain
	HabitsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habitline_habits_created_total",
			Help: "Total number of habits created",
		},
	)

	ActionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitline_actions_recorded_total",
			Help: "Total number of actions recorded, by habit type",
		},
		[]string{"habit_type"},
	)

	ReadingSessionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habitline_reading_sessions_recorded_total",
			Help: "Total number of reading sessions recorded",
		},
	)

	// Events
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitline_events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"type"},
	)

	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitline_event_publish_failures_total",
			Help: "Total number of domain events that failed to publish",
		},
		[]string{"type"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitline_events_consumed_total",
			Help: "Total number of domain events consumed, by outcome",
		},
		[]string{"outcome"}, // "recorded", "dropped", "retried"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "habitline_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitline_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Media store
	MediaBytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habitline_media_bytes_written_total",
			Help: "Total bytes written to the media store",
		},
	)

	MediaLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitline_media_lookups_total",
			Help: "Total number of media store lookups, by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	MediaGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitline_media_gc_runs_total",
			Help: "Total number of value log GC passes, by result",
		},
		[]string{"result"}, // "rewritten", "noop", "error"
	)
)

// RecordDBQuery observes one query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest observes one HTTP request. path should be the route
// pattern, not the raw URL, to keep label cardinality bounded.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordEventPublish counts a publish attempt for eventType.
func RecordEventPublish(eventType string, err error) {
	if err != nil {
		EventPublishFailures.WithLabelValues(eventType).Inc()
		return
	}
	EventsPublished.WithLabelValues(eventType).Inc()
}

// RecordEventConsumed counts a consumed event by outcome.
func RecordEventConsumed(outcome string) {
	EventsConsumed.WithLabelValues(outcome).Inc()
}

// RecordCircuitBreakerTransition updates the state gauge for name.
// States follow gobreaker: 0 closed, 1 half-open, 2 open.
func RecordCircuitBreakerTransition(name, from, to string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordMediaWrite counts bytes stored in the media store.
func RecordMediaWrite(n int) {
	MediaBytesWritten.Add(float64(n))
}

// RecordMediaLookup counts a media store Get.
func RecordMediaLookup(hit bool) {
	if hit {
		MediaLookups.WithLabelValues("hit").Inc()
		return
	}
	MediaLookups.WithLabelValues("miss").Inc()
}

// RecordMediaGC counts one value log GC pass.
func RecordMediaGC(result string) {
	MediaGCRuns.WithLabelValues(result).Inc()
}
