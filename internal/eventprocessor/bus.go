// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package eventprocessor

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/habitline/internal/logging"
)

// BusConfig configures the in-process bus.
type BusConfig struct {
	// BufferSize is each subscriber's output channel buffer.
	BufferSize int64
	// Persistent keeps every published message so late subscribers still
	// receive it. Memory grows without bound; only tests should set it.
	Persistent bool
}

// NewBus returns a gochannel pub/sub that logs through zerolog.
func NewBus(cfg BusConfig) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
		Persistent:          cfg.Persistent,
	}, NewWatermillLogger())
}

// watermillLogger adapts zerolog to watermill.LoggerAdapter.
type watermillLogger struct {
	log    zerolog.Logger
	fields watermill.LogFields
}

// NewWatermillLogger returns a watermill logger tagged component=watermill.
func NewWatermillLogger() watermill.LoggerAdapter {
	return &watermillLogger{log: logging.WithComponent("watermill")}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.event(l.log.Error(), fields).Err(err).Msg(msg)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	// Watermill logs every subscribe and close at info.
	l.event(l.log.Debug(), fields).Msg(msg)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.event(l.log.Trace(), fields).Msg(msg)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.event(l.log.Trace(), fields).Msg(msg)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{log: l.log, fields: l.fields.Add(fields)}
}

func (l *watermillLogger) event(e *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	if e == nil {
		return nil
	}
	for k, v := range l.fields {
		e = e.Interface(k, v)
	}
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}
