// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package eventprocessor

import "errors"

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("publisher is closed")

// ErrNilEvent is returned when a nil event is published.
var ErrNilEvent = errors.New("event cannot be nil")

// ErrInvalidEvent wraps event validation failures.
var ErrInvalidEvent = errors.New("invalid event")
