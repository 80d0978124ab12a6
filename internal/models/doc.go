// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

/*
Package models defines the JSON shapes Habitline sends over HTTP.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {
	    "timestamp": "2026-03-14T09:30:00Z",
	    "request_id": "3f0c...",
	    "pagination": {"page": 1, "limit": 10, "total": 42, "totalPages": 5}
	  }
	}

Errors use the same envelope with "status": "error" and an APIError.

Resource DTOs (HabitResponse, ActionResponse, BookResponse,
ReadingSessionResponse, ActivityEntry) are built from domain values with the
New*Response constructors. Domain types never carry json tags.
*/
package models
