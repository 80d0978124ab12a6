// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/habitline/config.yaml",
	"/etc/habitline/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			Environment:     EnvDevelopment,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{
			Version:         "v1",
			DefaultPageSize: 10,
			MaxPageSize:     100,
			MaxBodyBytes:    3 << 20,
		},
		Database: DatabaseConfig{
			Path:         "data/habitline.db",
			BusyTimeout:  5 * time.Second,
			MaxOpenConns: 4,
		},
		Media: MediaConfig{
			Path:           "data/media",
			InMemory:       false,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
			CacheEntries:   64,
		},
		Events: EventsConfig{
			Topic:             "habitline.activity",
			BufferSize:        256,
			BreakerThreshold:  5,
			BreakerTimeout:    30 * time.Second,
			ActivityRetention: 10000,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"http://localhost:5173"},
			RateLimitReqs:   100,
			RateLimitWindow: 15 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with this precedence (highest last):
//  1. built-in defaults
//  2. YAML file from CONFIG_PATH or DefaultConfigPaths, if present
//  3. environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	if err := processMillisFields(k); err != nil {
		return nil, fmt.Errorf("failed to process duration fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	applyEnvironmentDefaults(k, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvironmentDefaults drops the default info level to warn under test.
// An explicit LOG_LEVEL always wins.
func applyEnvironmentDefaults(k *koanf.Koanf, cfg *Config) {
	if cfg.IsTest() && k.String("logging.level") == "info" && os.Getenv("LOG_LEVEL") == "" {
		cfg.Logging.Level = "warn"
	}
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// millisConfigPaths accept a bare integer as milliseconds, matching the
// RATE_LIMIT_WINDOW=900000 form used by older deployments.
var millisConfigPaths = []string{
	"security.rate_limit_window",
}

func processMillisFields(k *koanf.Koanf) error {
	for _, path := range millisConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			continue // not numeric; left for the duration decoder
		}
		if err := k.Set(path, time.Duration(ms)*time.Millisecond); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Several names are accepted for the same setting so existing deployment
// files keep working.
var envMappings = map[string]string{
	// Server
	"node_env":         "server.environment",
	"environment":      "server.environment",
	"port":             "server.port",
	"http_port":        "server.port",
	"host":             "server.host",
	"http_host":        "server.host",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// API
	"api_version":       "api.version",
	"default_page_size": "api.default_page_size",
	"max_page_size":     "api.max_page_size",
	"max_body_bytes":    "api.max_body_bytes",

	// Database
	"database_url":            "database.path",
	"database_path":           "database.path",
	"database_busy_timeout":   "database.busy_timeout",
	"database_max_open_conns": "database.max_open_conns",

	// Media store
	"media_path":             "media.path",
	"media_in_memory":        "media.in_memory",
	"media_gc_interval":      "media.gc_interval",
	"media_gc_discard_ratio": "media.gc_discard_ratio",
	"media_cache_entries":    "media.cache_entries",

	// Events
	"events_topic":              "events.topic",
	"events_buffer_size":        "events.buffer_size",
	"events_breaker_threshold":  "events.breaker_threshold",
	"events_breaker_timeout":    "events.breaker_timeout",
	"events_activity_retention": "events.activity_retention",

	// Security
	"cors_origin":         "security.cors_origins",
	"cors_origins":        "security.cors_origins",
	"rate_limit_max":      "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"rate_limit_disabled": "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to a koanf path. Unmapped
// variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
