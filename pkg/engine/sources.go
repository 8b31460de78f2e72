// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"

	"github.com/seehuhn/mt19937"
	exprand "golang.org/x/exp/rand"
)

// The adapters below wrap named bit generators so they satisfy the
// uniform distribution's Source interface (Uint64 + Seed).

// mtSource adapts the 64-bit Mersenne Twister.
type mtSource struct {
	mt *mt19937.MT19937
}

func newMTSource() exprand.Source {
	mt := mt19937.New()
	mt.Seed(int64(entropySeed()))
	return &mtSource{mt: mt}
}

func (s *mtSource) Uint64() uint64   { return s.mt.Uint64() }
func (s *mtSource) Seed(seed uint64) { s.mt.Seed(int64(seed)) }

// pcg64Source adapts the PCG generator from math/rand/v2.
type pcg64Source struct {
	pcg *mrand.PCG
}

func newPCG64Source() exprand.Source {
	return &pcg64Source{pcg: mrand.NewPCG(entropySeed(), entropySeed())}
}

func (s *pcg64Source) Uint64() uint64 { return s.pcg.Uint64() }

func (s *pcg64Source) Seed(seed uint64) {
	s.pcg.Seed(seed, xorshift64(seed|1))
}

// chacha8Source adapts the ChaCha8 generator from math/rand/v2.
type chacha8Source struct {
	chacha *mrand.ChaCha8
}

func newChaCha8Source() exprand.Source {
	var key [32]byte
	if _, err := crand.Read(key[:]); err != nil {
		expandSeed(&key, entropySeed())
	}
	return &chacha8Source{chacha: mrand.NewChaCha8(key)}
}

func (s *chacha8Source) Uint64() uint64 { return s.chacha.Uint64() }

func (s *chacha8Source) Seed(seed uint64) {
	var key [32]byte
	expandSeed(&key, seed)
	s.chacha.Seed(key)
}

// expandSeed stretches one 64-bit seed over a 256-bit key.
func expandSeed(key *[32]byte, seed uint64) {
	for i := 0; i < 4; i++ {
		seed = xorshift64(seed | 1)
		binary.LittleEndian.PutUint64(key[i*8:], seed)
	}
}

// lcg64Source is the MMIX linear congruential generator, constants per
// Knuth. Small state, long period, adequate for a toy engine choice.
type lcg64Source struct {
	state uint64
}

func (s *lcg64Source) Uint64() uint64 {
	s.state = s.state*0x5851f42d4c957f2d + 0x14057b7ef767814f
	return s.state
}

func (s *lcg64Source) Seed(seed uint64) { s.state = seed }

// xorshiftSource is Marsaglia's xorshift64. State must stay non-zero.
type xorshiftSource struct {
	state uint64
}

func (s *xorshiftSource) Uint64() uint64 {
	s.state = xorshift64(s.state)
	return s.state
}

func (s *xorshiftSource) Seed(seed uint64) { s.state = seed | 1 }

// cryptoSource draws every word straight from the system entropy pool.
// Slow, but an easy answer when draw quality is questioned.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return xorshift64(entropySeed())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func (cryptoSource) Seed(uint64) {}
