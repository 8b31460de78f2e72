// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package rounding implements the post-draw rounding policy.
//
// Exactly one mode is active per run. The policy is a pure transform
// applied to each draw before the acceptance filter chain sees it.
package rounding

import "math"

// Mode selects the rounding transform applied after each draw.
type Mode int

const (
	// None leaves the drawn value untouched.
	None Mode = iota

	// Ceil rounds toward positive infinity.
	Ceil

	// Floor rounds toward negative infinity.
	Floor

	// Round rounds to the nearest integer, ties away from zero.
	Round

	// Trunc rounds toward zero.
	Trunc
)

// String returns the flag-facing name of the mode.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Ceil:
		return "ceil"
	case Floor:
		return "floor"
	case Round:
		return "round"
	case Trunc:
		return "trunc"
	default:
		return "unknown"
	}
}

// Active reports whether the mode changes values at all.
func (m Mode) Active() bool {
	return m != None
}

// Apply returns v transformed by the mode.
//
// # Description
//
// The transform is idempotent: applying the same mode to its own output
// returns the output unchanged. Ceil and Floor may push a value outside
// the generator's [lower, upper] range at the boundary; that overshoot
// is intended behavior, not clamped.
func (m Mode) Apply(v float64) float64 {
	switch m {
	case Ceil:
		return math.Ceil(v)
	case Floor:
		return math.Floor(v)
	case Round:
		return math.Round(v)
	case Trunc:
		return math.Trunc(v)
	default:
		return v
	}
}
