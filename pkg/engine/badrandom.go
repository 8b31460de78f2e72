// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "time"

// badRandMax mirrors the RAND_MAX of the C runtime the degraded engine
// imitates: raw draws are 31-bit non-negative integers.
const badRandMax = 1<<31 - 1

// badRandom is the degraded fallback engine.
//
// It is seeded from the wall clock, not from system entropy, and maps
// raw integers into [lower, upper] with a plain linear rescale:
//
//	lower + raw / (badRandMax / (upper - lower))
//
// rather than going through the uniform distribution machinery. The
// rescale slightly biases tail behavior; that is a known limitation of
// the degraded mode and is deliberately left alone.
type badRandom struct {
	state uint64
	lower float64
	upper float64
}

func newBadRandom(lower, upper float64) *badRandom {
	return &badRandom{
		state: uint64(time.Now().Unix()),
		lower: lower,
		upper: upper,
	}
}

func (g *badRandom) Next() float64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	raw := float64((g.state >> 33) & badRandMax)
	return g.lower + raw/(badRandMax/(g.upper-g.lower))
}

func (g *badRandom) Name() string { return "badrandom" }
