// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/habitline/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	basePath      string
}

// NewRouter creates a Router. A nil mw uses the default middleware config.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	basePath := "/api/v1"
	if handler.config != nil {
		basePath = handler.config.API.BasePath()
	}
	return &Router{handler: handler, chiMiddleware: mw, basePath: basePath}
}

// chiMiddleware adapts http.HandlerFunc middleware to chi's r.Use signature.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route(router.basePath, func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", h.ListHabits)
			r.Post("/", h.CreateHabit)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetHabit)
				r.Patch("/", h.UpdateHabit)
				r.Delete("/", h.DeleteHabit)
				r.Get("/details", h.GetHabitDetails)
				r.Post("/increment-action", h.IncrementHabitActions)
				r.Get("/actions", h.ListHabitActions)
				r.Post("/actions", h.StartAction)
			})
		})

		r.Route("/actions/{id}", func(r chi.Router) {
			r.Get("/", h.GetAction)
			r.Post("/complete", h.CompleteAction)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", h.ListBooks)
			r.Post("/", h.CreateBook)
			r.Get("/{id}", h.GetBook)
			r.Patch("/{id}", h.UpdateBook)
			r.Delete("/{id}", h.DeleteBook)
		})

		r.Route("/reading-sessions", func(r chi.Router) {
			r.Get("/", h.ListReadingSessions)
			r.Post("/", h.RecordReadingSession)
			r.Get("/{id}", h.GetReadingSession)
		})

		r.Get("/activity", h.ListActivity)
		r.Get("/media/{key}", h.GetMedia)
	})

	return r
}
