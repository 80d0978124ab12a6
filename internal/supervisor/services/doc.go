// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package services adapts components with their own lifecycles to
// suture.Service: Serve(ctx) blocks until ctx is cancelled and String()
// names the service in supervisor logs.
package services
