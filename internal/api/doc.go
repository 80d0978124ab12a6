// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

/*
Package api exposes the tracker over HTTP using the chi router.

Routes live under /api/v1 (see Router.SetupChi for the full table) plus the
root /health check and the Prometheus /metrics endpoint. Every JSON response
uses the models.APIResponse envelope.

Middleware order:

 1. request id and correlation id (middleware.RequestID)
 2. real IP
 3. recoverer
 4. access log
 5. CORS

Inside the /api/v1 group each request is then rate limited by IP, given
security headers, and counted by the Prometheus middleware.

Handlers decode bodies with goccy/go-json, check them with validator/v10
(internal/validation), and translate tracker errors by kind:

	validation  400 VALIDATION_ERROR
	not found   404 NOT_FOUND
	conflict    409 CONFLICT
	other       500 INTERNAL_ERROR
*/
package api
