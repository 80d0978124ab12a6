// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/habitline/internal/config"
)

func TestDefaultChiMiddlewareConfig(t *testing.T) {
	t.Parallel()

	c := DefaultChiMiddlewareConfig()
	if len(c.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want none", c.CORSAllowedOrigins)
	}
	if c.RateLimitRequests != 100 || c.RateLimitWindow != 15*time.Minute {
		t.Errorf("rate limit = %d per %v", c.RateLimitRequests, c.RateLimitWindow)
	}
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	t.Parallel()

	sec := &config.SecurityConfig{
		CORSOrigins:       []string{"https://a.example", "https://b.example"},
		RateLimitReqs:     7,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: true,
	}
	c := ChiMiddlewareConfigFrom(sec)
	if len(c.CORSAllowedOrigins) != 2 || c.RateLimitRequests != 7 || c.RateLimitWindow != time.Minute || !c.RateLimitDisabled {
		t.Errorf("config = %+v", c)
	}

	sec.CORSOrigins[0] = "changed"
	if c.CORSAllowedOrigins[0] != "https://a.example" {
		t.Error("origins should be copied")
	}

	if got := ChiMiddlewareConfigFrom(nil); got.RateLimitRequests != 100 {
		t.Errorf("nil security config should give defaults, got %+v", got)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true, RateLimitRequests: 1, RateLimitWindow: time.Minute})
	h := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"plain":        "plain",
		"line\nbreak":  `line\x0abreak`,
		"tab\there":    `tab\x09here`,
		"del\x7f":      `del\x7f`,
		"unicode café": "unicode café",
	}
	for in, want := range tests {
		if got := sanitizeLogValue(in); got != want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", in, got, want)
		}
	}
}
