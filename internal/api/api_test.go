// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/habitline/internal/config"
	"github.com/tomtom215/habitline/internal/database"
	"github.com/tomtom215/habitline/internal/mediastore"
	"github.com/tomtom215/habitline/internal/models"
	"github.com/tomtom215/habitline/internal/tracker"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

const testLogo = "data:image/png;base64,iVBORw0KGgo="

type testServer struct {
	handler http.Handler
	h       *Handler
	svc     *tracker.Service
	db      *database.DB
	media   *mediastore.Store
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: config.EnvTest},
		API: config.APIConfig{
			Version:         "v1",
			DefaultPageSize: 10,
			MaxPageSize:     100,
			MaxBodyBytes:    3 << 20,
		},
		Security: config.SecurityConfig{RateLimitDisabled: true},
	}
}

// newTestServer builds the full router over in-memory stores. tweak may
// adjust the config before the router is built.
func newTestServer(t *testing.T, tweak func(*config.Config)) *testServer {
	t.Helper()

	cfg := testConfig()
	if tweak != nil {
		tweak(cfg)
	}

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	media, err := mediastore.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() {
		_ = media.Close()
		_ = db.Close()
	})

	svc := tracker.New(db, media,
		tracker.WithClock(func() time.Time { return testNow }),
		tracker.WithPageSizes(cfg.API.DefaultPageSize, cfg.API.MaxPageSize),
	)
	h := NewHandler(svc, cfg, "test")
	router := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFrom(&cfg.Security)))
	return &testServer{handler: router.SetupChi(), h: h, svc: svc, db: db, media: media}
}

// do sends a request. A string body is sent verbatim; anything else is
// marshalled to JSON.
func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

// expect checks the status code and decodes data into dst when dst is set.
func expect(t *testing.T, rec *httptest.ResponseRecorder, status int, dst interface{}) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if status == http.StatusNoContent {
		return envelope{}
	}
	env := decodeEnvelope(t, rec)
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("decode data: %v (data %s)", err, env.Data)
		}
	}
	return env
}

// expectError checks the status and error code.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) *models.APIError {
	t.Helper()
	env := expect(t, rec, status, nil)
	if env.Status != models.StatusError {
		t.Errorf("envelope status = %q, want error", env.Status)
	}
	if env.Error == nil {
		t.Fatal("error object missing")
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q (message %q)", env.Error.Code, code, env.Error.Message)
	}
	return env.Error
}

func rfc3339(t time.Time) string { return t.Format(time.RFC3339) }

func (s *testServer) createHabit(t *testing.T, name, habitType string) models.HabitResponse {
	t.Helper()
	var h models.HabitResponse
	expect(t, s.do(t, http.MethodPost, "/api/v1/habits", map[string]interface{}{
		"name": name, "habitType": habitType, "logo": testLogo,
	}), http.StatusCreated, &h)
	return h
}

func (s *testServer) createBook(t *testing.T, name string, totalPages int) models.BookResponse {
	t.Helper()
	var b models.BookResponse
	expect(t, s.do(t, http.MethodPost, "/api/v1/books", map[string]interface{}{
		"name": name, "totalPages": totalPages,
	}), http.StatusCreated, &b)
	return b
}
