// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package tracker

import (
	"context"
	"fmt"

	"github.com/tomtom215/habitline/internal/database"
)

// ListActivity returns the newest limit activity entries. Zero means the
// default size.
func (s *Service) ListActivity(ctx context.Context, limit int) ([]database.ActivityRecord, error) {
	if limit == 0 {
		limit = DefaultActivitySize
	}
	if limit < 1 || limit > MaxActivitySize {
		return nil, validation("limit", fmt.Sprintf("limit must be between 1 and %d", MaxActivitySize))
	}
	return s.store.ListActivity(ctx, limit)
}
