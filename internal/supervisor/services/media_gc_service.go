// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/tomtom215/habitline/internal/logging"
)

// GarbageCollector is satisfied by *mediastore.Store.
type GarbageCollector interface {
	RunGC() error
}

// maxConsecutiveGCFailures is how many failed runs in a row are tolerated
// before Serve returns and lets the supervisor back off.
const maxConsecutiveGCFailures = 3

// MediaGCService compacts the media store's value log on a fixed interval.
type MediaGCService struct {
	gc       GarbageCollector
	interval time.Duration
	runs     atomic.Int64
}

// NewMediaGCService creates the service. interval zero means 10 minutes.
func NewMediaGCService(gc GarbageCollector, interval time.Duration) *MediaGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &MediaGCService{gc: gc, interval: interval}
}

// Serve implements suture.Service.
func (s *MediaGCService) Serve(ctx context.Context) error {
	log := logging.WithComponent("media-gc")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runs.Add(1)
			if err := s.gc.RunGC(); err != nil {
				failures++
				log.Warn().Err(err).Int("consecutive_failures", failures).Msg("Media GC failed")
				if failures >= maxConsecutiveGCFailures {
					return fmt.Errorf("media GC failed %d times in a row: %w", failures, err)
				}
				continue
			}
			failures = 0
		}
	}
}

// Runs returns how many GC passes have been attempted.
func (s *MediaGCService) Runs() int64 {
	return s.runs.Load()
}

// String implements fmt.Stringer.
func (s *MediaGCService) String() string {
	return "media-gc"
}
