// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package domain

import (
	"fmt"
	"math"
	"time"
)

// MaxActionDuration caps a single time range.
const MaxActionDuration = 24 * time.Hour

// TimeRange is a start instant with an optional, later end.
// The zero value is not valid; use NewTimeRange.
type TimeRange struct {
	start time.Time
	end   *time.Time
}

// NewTimeRange validates a range against now:
// start is required and not in the future; end, if given, is after start
// and at most MaxActionDuration later.
func NewTimeRange(start time.Time, end *time.Time, now time.Time) (TimeRange, error) {
	if start.IsZero() {
		return TimeRange{}, invalid("startTime", "start time is required")
	}
	if start.After(now) {
		return TimeRange{}, invalid("startTime", "start time cannot be in the future")
	}
	if end != nil {
		if !end.After(start) {
			return TimeRange{}, invalid("endTime", "end time must be after start time")
		}
		if end.Sub(start) > MaxActionDuration {
			return TimeRange{}, invalid("endTime", fmt.Sprintf("duration cannot exceed %d hours", int(MaxActionDuration.Hours())))
		}
		e := *end
		end = &e
	}
	return TimeRange{start: start, end: end}, nil
}

// RestoreTimeRange rebuilds a range read from storage without the
// "not in the future" check, which only applies at creation time.
func RestoreTimeRange(start time.Time, end *time.Time) TimeRange {
	var e *time.Time
	if end != nil {
		v := *end
		e = &v
	}
	return TimeRange{start: start, end: e}
}

func (r TimeRange) Start() time.Time { return r.start }

// End returns the end instant and whether the range is completed.
func (r TimeRange) End() (time.Time, bool) {
	if r.end == nil {
		return time.Time{}, false
	}
	return *r.end, true
}

// EndPtr returns a copy of the end instant or nil.
func (r TimeRange) EndPtr() *time.Time {
	if r.end == nil {
		return nil
	}
	e := *r.end
	return &e
}

func (r TimeRange) IsCompleted() bool { return r.end != nil }

// Duration is zero for an open range.
func (r TimeRange) Duration() time.Duration {
	if r.end == nil {
		return 0
	}
	return r.end.Sub(r.start)
}

// DurationMinutes returns the fractional minutes and false for an open range.
func (r TimeRange) DurationMinutes() (float64, bool) {
	if r.end == nil {
		return 0, false
	}
	return r.Duration().Minutes(), true
}

// DurationSeconds returns whole seconds, rounded down, and false for an open range.
func (r TimeRange) DurationSeconds() (int64, bool) {
	if r.end == nil {
		return 0, false
	}
	return int64(math.Floor(r.Duration().Seconds())), true
}

// Complete closes the range at end, re-applying every creation rule.
func (r TimeRange) Complete(end, now time.Time) (TimeRange, error) {
	return NewTimeRange(r.start, &end, now)
}
