// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package main is the Habitline server binary.
//
// # Startup Order
//
// The serve command initializes components in this order:
//
//  1. Configuration: defaults, config file, environment (Koanf v2)
//  2. Logging: zerolog, reconfigured from the loaded settings
//  3. Database: SQLite with versioned migrations
//  4. Media store: BadgerDB for logos and cover images
//  5. Event bus: in-process Watermill gochannel behind a circuit breaker
//  6. Tracker service and HTTP router (chi)
//  7. Supervisor tree (suture) running media GC, the activity consumer
//     and the HTTP server
//
// # Commands
//
//	habitline            # same as "habitline serve"
//	habitline serve
//	habitline migrate    # apply schema migrations and exit
//	habitline version
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests for up to SHUTDOWN_TIMEOUT, then the event bus, media
// store and database are closed in that order.
//
// # Example Usage
//
//	export PORT=3000
//	export DATABASE_PATH=/data/habitline.db
//	export MEDIA_PATH=/data/media
//	export CORS_ORIGINS=https://app.example.com
//	./habitline serve
package main
