// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package eventprocessor

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/habitline/internal/config"
	"github.com/tomtom215/habitline/internal/logging"
	"github.com/tomtom215/habitline/internal/metrics"
)

// CircuitBreakerConfig configures the publish breaker.
type CircuitBreakerConfig struct {
	Name string
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts; zero never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout time.Duration
	// FailureThreshold consecutive failures trip the breaker.
	FailureThreshold uint32
}

// BreakerConfigFrom derives breaker settings from the events config.
func BreakerConfigFrom(cfg *config.EventsConfig) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             "event-publisher",
		MaxRequests:      1,
		Timeout:          cfg.BreakerTimeout,
		FailureThreshold: cfg.BreakerThreshold,
	}
}

// NewCircuitBreaker returns a breaker that trips after FailureThreshold
// consecutive failures and reports state changes to metrics and the log.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker[interface{}] {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String(), int(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}
	return gobreaker.NewCircuitBreaker[interface{}](settings)
}
