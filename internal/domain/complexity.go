// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package domain

import "fmt"

// Complexity classifies how a habit is performed.
type Complexity string

const (
	ComplexityComplex          Complexity = "Complex"
	ComplexitySimple           Complexity = "Simple"
	ComplexityWithoutIntervals Complexity = "Without Intervals"
)

// Complexities lists every valid value in display order.
var Complexities = []Complexity{ComplexityComplex, ComplexitySimple, ComplexityWithoutIntervals}

// ParseComplexity accepts the exact string form of a Complexity.
func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(s)
	if !c.Valid() {
		return "", invalid("habitType", fmt.Sprintf("habit type must be one of Complex, Simple, Without Intervals; got %q", s))
	}
	return c, nil
}

// Valid reports whether c is a known value.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexityComplex, ComplexitySimple, ComplexityWithoutIntervals:
		return true
	}
	return false
}
