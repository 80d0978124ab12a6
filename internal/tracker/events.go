// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package tracker

import (
	"context"

	"github.com/tomtom215/habitline/internal/eventprocessor"
	"github.com/tomtom215/habitline/internal/logging"
)

// emit publishes best-effort. The change it describes is already committed,
// so a failure is logged and never returned.
func (s *Service) emit(ctx context.Context, t eventprocessor.EventType, entityID string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	event, err := eventprocessor.NewEvent(t, entityID, payload, s.clock())
	if err == nil {
		err = s.events.PublishEvent(ctx, event)
	}
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("event_type", string(t)).
			Str("entity_id", entityID).
			Msg("Failed to publish event")
	}
}
