// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tomtom215/habitline/internal/logging"
)

var apiVersionPattern = regexp.MustCompile(`^v[0-9]+$`)

// Validate checks that the configuration is usable. Errors name the
// environment variable to fix.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Server.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("NODE_ENV must be one of development, production, test; got %q", c.Server.Environment)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if !apiVersionPattern.MatchString(c.API.Version) {
		return fmt.Errorf("API_VERSION must look like v1, got %q", c.API.Version)
	}
	if c.API.MaxPageSize < 1 {
		return fmt.Errorf("MAX_PAGE_SIZE must be at least 1, got %d", c.API.MaxPageSize)
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be between 1 and %d, got %d", c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.MaxBodyBytes < 1<<10 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024, got %d", c.API.MaxBodyBytes)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DATABASE_MAX_OPEN_CONNS must be at least 1, got %d", c.Database.MaxOpenConns)
	}
	return nil
}

func (c *Config) validateMedia() error {
	if !c.Media.InMemory && strings.TrimSpace(c.Media.Path) == "" {
		return fmt.Errorf("MEDIA_PATH is required unless MEDIA_IN_MEMORY=true")
	}
	if c.Media.GCDiscardRatio <= 0 || c.Media.GCDiscardRatio >= 1 {
		return fmt.Errorf("MEDIA_GC_DISCARD_RATIO must be between 0 and 1 (exclusive), got %v", c.Media.GCDiscardRatio)
	}
	if c.Media.CacheEntries < 0 {
		return fmt.Errorf("MEDIA_CACHE_ENTRIES cannot be negative, got %d", c.Media.CacheEntries)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if strings.TrimSpace(c.Events.Topic) == "" {
		return fmt.Errorf("EVENTS_TOPIC is required")
	}
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must not be negative, got %d", c.Events.BufferSize)
	}
	if c.Events.BreakerThreshold == 0 {
		return fmt.Errorf("EVENTS_BREAKER_THRESHOLD must be at least 1")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_MAX must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
		}
	}
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGIN must not contain * in production")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
