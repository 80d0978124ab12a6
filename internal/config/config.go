// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package config loads Habitline configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables. See LoadWithKoanf for the precedence rules and
// envTransformFunc for the supported variable names.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Supported environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Database DatabaseConfig `koanf:"database"`
	Media    MediaConfig    `koanf:"media"`
	Events   EventsConfig   `koanf:"events"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Environment     string        `koanf:"environment"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// APIConfig holds API surface settings.
type APIConfig struct {
	// Version is the path segment under /api, e.g. "v1".
	Version         string `koanf:"version"`
	DefaultPageSize int    `koanf:"default_page_size"`
	MaxPageSize     int    `koanf:"max_page_size"`
	// MaxBodyBytes bounds request bodies. Logos may be up to 2 MiB before
	// base64 overhead.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// BasePath returns the versioned API prefix.
func (a APIConfig) BasePath() string {
	return fmt.Sprintf("/api/%s", a.Version)
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	// Path is a file path, a "file:" DSN, or ":memory:".
	Path         string        `koanf:"path"`
	BusyTimeout  time.Duration `koanf:"busy_timeout"`
	MaxOpenConns int           `koanf:"max_open_conns"`
}

// MediaConfig holds BadgerDB media store settings.
type MediaConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
	// GCDiscardRatio is passed to badger's RunValueLogGC.
	GCDiscardRatio float64 `koanf:"gc_discard_ratio"`
	// CacheEntries bounds the decoded media kept in memory by the API.
	CacheEntries int `koanf:"cache_entries"`
}

// EventsConfig holds domain event bus settings.
type EventsConfig struct {
	Topic             string        `koanf:"topic"`
	BufferSize        int64         `koanf:"buffer_size"`
	BreakerThreshold  uint32        `koanf:"breaker_threshold"`
	BreakerTimeout    time.Duration `koanf:"breaker_timeout"`
	ActivityRetention int           `koanf:"activity_retention"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// IsTest reports whether the service runs under tests.
func (c *Config) IsTest() bool {
	return c.Server.Environment == EnvTest
}

// Load reads configuration from all sources.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
