// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

// Package domain holds Habitline's value objects and entities.
//
// Constructors validate their input and return a *ValidationError on the
// first broken rule, so a value that exists is always valid. Entities are
// passed by value; update methods return a modified copy and leave the
// receiver untouched.
//
// Nothing in this package reads the clock. Callers pass "now" explicitly,
// which keeps every rule deterministic under test.
package domain
