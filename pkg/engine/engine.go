// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine maps generator names to bounded uniform random sources.
//
// Every strong engine layers a continuous uniform distribution over
// [lower, upper] on top of a named bit generator; the bit generator is
// seeded exactly once, at construction, from system entropy. The one
// exception is the degraded "badrandom" engine, kept for environments
// without a usable entropy source: it is seeded from the wall clock and
// rescales raw integers linearly, which slightly biases its tail
// behavior. That bias is a documented limitation, not a bug.
package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Default is the generator used when no name is given.
const Default = "mt19937"

// Generator produces one bounded draw per Next call.
//
// A Generator owns its internal bit-generator state for the whole run;
// it is not safe for concurrent use and never needs to be.
type Generator interface {
	// Next returns one value drawn from [lower, upper].
	Next() float64

	// Name returns the identifier the generator was selected by.
	Name() string
}

// sourceFactory builds a freshly seeded bit source for one run.
type sourceFactory func() exprand.Source

// engines is the closed set of selectable algorithms. Adding an entry
// here is the only step needed to expose a new engine.
var engines = map[string]sourceFactory{
	"mt19937":    newMTSource,
	"pcg":        func() exprand.Source { return exprand.NewSource(entropySeed()) },
	"pcg64":      newPCG64Source,
	"chacha8":    newChaCha8Source,
	"lcg64":      func() exprand.Source { return &lcg64Source{state: entropySeed()} },
	"xorshift64": func() exprand.Source { return &xorshiftSource{state: entropySeed() | 1} },
	"crypto":     func() exprand.Source { return cryptoSource{} },
}

// Names returns the selectable generator identifiers, sorted, including
// the degraded engine.
func Names() []string {
	names := make([]string, 0, len(engines)+1)
	for name := range engines {
		names = append(names, name)
	}
	names = append(names, "badrandom")
	sort.Strings(names)
	return names
}

// Supported reports whether name is a member of the engine set.
func Supported(name string) bool {
	if name == "badrandom" {
		return true
	}
	_, ok := engines[name]
	return ok
}

// New builds the named generator bounded to [lower, upper].
//
// # Description
//
// The same name always selects the same algorithmic family, but each
// call returns an independent, freshly seeded instance. Callers are
// expected to have validated the name already; an unknown name is still
// rejected here so the registry stays the single source of truth.
func New(name string, lower, upper float64) (Generator, error) {
	if name == "badrandom" {
		return newBadRandom(lower, upper), nil
	}
	factory, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q", name)
	}
	return &uniformGenerator{
		name: name,
		dist: distuv.Uniform{Min: lower, Max: upper, Src: factory()},
	}, nil
}

// uniformGenerator draws from a bounded continuous uniform distribution
// layered over a named bit source.
type uniformGenerator struct {
	name string
	dist distuv.Uniform
}

func (g *uniformGenerator) Next() float64 { return g.dist.Rand() }
func (g *uniformGenerator) Name() string  { return g.name }

// entropySeed returns a 64-bit seed from the system entropy source,
// falling back to a scrambled wall clock if entropy is unavailable.
func entropySeed() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err == nil {
		return binary.LittleEndian.Uint64(buf[:])
	}
	return xorshift64(uint64(time.Now().UnixNano()))
}

// xorshift64 is Marsaglia's 13/7/17 scramble.
func xorshift64(x uint64) uint64 {
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	return x
}
