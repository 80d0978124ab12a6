// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package api

import (
	"time"

	"github.com/tomtom215/habitline/internal/cache"
	"github.com/tomtom215/habitline/internal/config"
	"github.com/tomtom215/habitline/internal/mediastore"
	"github.com/tomtom215/habitline/internal/tracker"
)

// Handler holds the dependencies shared by every HTTP handler.
type Handler struct {
	svc       *tracker.Service
	config    *config.Config
	version   string
	startTime time.Time

	// mediaCache holds decoded data URLs by media key.
	mediaCache *cache.LRU[mediastore.Media]
}

// mediaCacheTTL bounds how long an unrequested entry stays cached.
const mediaCacheTTL = 30 * time.Minute

// NewHandler creates a Handler. version is reported by the health endpoint.
func NewHandler(svc *tracker.Service, cfg *config.Config, version string) *Handler {
	if version == "" {
		version = "dev"
	}
	entries := 0
	if cfg != nil {
		entries = cfg.Media.CacheEntries
	}
	return &Handler{
		svc:        svc,
		config:     cfg,
		version:    version,
		startTime:  time.Now(),
		mediaCache: cache.New[mediastore.Media](entries, mediaCacheTTL),
	}
}

func (h *Handler) maxBodyBytes() int64 {
	if h.config == nil || h.config.API.MaxBodyBytes <= 0 {
		return 3 << 20
	}
	return h.config.API.MaxBodyBytes
}

func (h *Handler) environment() string {
	if h.config == nil {
		return config.EnvDevelopment
	}
	return h.config.Server.Environment
}
