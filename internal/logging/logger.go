// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package logging provides the zerolog-based global logger for Habitline.
//
// Every package logs through this package so output has one shape:
// JSON lines in production, colourised console lines in development.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("habit_id", id).Msg("Habit created")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Publish failed")
//
// Always terminate an event chain with Msg or Send, otherwise nothing is written.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, fatal, disabled.
	Level string

	// Format is json or console.
	Format string

	// Caller adds file:line to every entry.
	Caller bool

	// Timestamp adds the time field to every entry.
	Timestamp bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the production logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	initLogger(DefaultConfig())
}

// Init reconfigures the global logger. Safe to call more than once.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

// initLogger must be called with mu held.
func initLogger(cfg Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.ErrorFieldName = "error"
	zerolog.CallerFieldName = "caller"

	out := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	l := zerolog.New(out)
	if cfg.Timestamp {
		l = l.With().Timestamp().Logger()
	}
	if cfg.Caller {
		l = l.With().Caller().Logger()
	}
	log = l
}

// levels maps accepted LOG_LEVEL spellings to zerolog levels.
var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
	"silent":   zerolog.Disabled,
}

// parseLevel falls back to info for unknown names.
func parseLevel(level string) zerolog.Level {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	return ok
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return *current()
}

// current snapshots the global logger so events are built outside the lock.
func current() *zerolog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	return &l
}

// SetLogger replaces the global logger. Tests use it to capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// With starts a child logger context.
func With() zerolog.Context {
	return current().With()
}

// Debug starts a debug level event.
func Debug() *zerolog.Event {
	return current().Debug()
}

// Info starts an info level event.
func Info() *zerolog.Event {
	return current().Info()
}

// Warn starts a warn level event.
func Warn() *zerolog.Event {
	return current().Warn()
}

// Error starts an error level event.
func Error() *zerolog.Event {
	return current().Error()
}

// Fatal starts a fatal level event. os.Exit(1) runs after the entry is written.
func Fatal() *zerolog.Event {
	return current().Fatal()
}

// Err starts an error level event carrying err.
func Err(err error) *zerolog.Event {
	return current().Err(err)
}

// SetLevelString updates the global level.
func SetLevelString(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

// NewTestLogger returns a JSON logger writing to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
