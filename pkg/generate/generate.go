// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package generate runs the draw -> round -> filter -> accumulate loop.
//
// The loop has two counting regimes. Normally each draw, accepted or
// not, consumes one unit of the count budget, so the accepted sequence
// may end up shorter than count. Under numbers-force the budget counts
// accepted values instead: rejected draws are retried until exactly
// count values have been accepted. With an over-constrained filter
// chain that retry is unbounded; the optional attempt cap and a stall
// warning keep the hazard visible instead of hanging silently.
package generate

import (
	"github.com/diceroll-cli/diceroll/pkg/config"
	"github.com/diceroll-cli/diceroll/pkg/engine"
	"github.com/diceroll-cli/diceroll/pkg/filter"
	"github.com/diceroll-cli/diceroll/pkg/logging"
)

// stallWarnStreak is the number of consecutive rejections under
// numbers-force after which the loop warns that it may be stuck.
const stallWarnStreak = 1 << 20

// Emitter receives each accepted value as soon as it is accepted.
// Output is streaming: values are emitted strictly in generation order,
// never buffered until the end.
type Emitter interface {
	// Emit is called with the 1-based position of the accepted value
	// within the accepted sequence.
	Emit(position int64, value float64)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(position int64, value float64)

// Emit calls f.
func (f EmitterFunc) Emit(position int64, value float64) { f(position, value) }

// Runner owns one generation run: the engine, the rounding mode, the
// filter chain, and the accepted sequence being built.
type Runner struct {
	cfg   *config.RunConfig
	gen   engine.Generator
	chain *filter.Chain
	emit  Emitter
	log   *logging.Logger
}

// New assembles a Runner. emit may be nil when nothing should be
// printed; log may be nil for a default logger.
func New(cfg *config.RunConfig, gen engine.Generator, chain *filter.Chain, emit Emitter, log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Default()
	}
	return &Runner{cfg: cfg, gen: gen, chain: chain, emit: emit, log: log}
}

// Run executes the generation loop and returns the accepted sequence.
//
// # Description
//
// Each iteration draws one value, applies the rounding mode, and asks
// the filter chain for a verdict. Accepted values are appended to the
// accepted sequence and emitted immediately unless quiet mode is set.
// The returned slice is in generation order and is not mutated after
// Run returns.
//
// # Outputs
//
//   - []float64: the accepted sequence
//   - error: only under numbers-force with an attempt cap, when the cap
//     is exhausted before count values were accepted; the values
//     accepted so far are still returned
func (r *Runner) Run() ([]float64, error) {
	accepted := make([]float64, 0, r.cfg.Count)
	var attempts, streak int64

	for {
		if r.cfg.NumbersForce {
			if int64(len(accepted)) >= r.cfg.Count {
				break
			}
			if r.cfg.MaxAttempts > 0 && attempts >= r.cfg.MaxAttempts {
				return accepted, config.NewError(config.ExitAttemptsExhausted, "--max-attempts",
					"gave up after %d attempts with %d of %d values accepted",
					attempts, len(accepted), r.cfg.Count)
			}
		} else if attempts >= r.cfg.Count {
			break
		}
		attempts++

		value := r.cfg.Mode.Apply(r.gen.Next())
		ok, reason := r.chain.Accept(value)
		if !ok {
			streak++
			r.log.Debug("draw rejected", "value", value, "reason", reason.String())
			if r.cfg.NumbersForce && streak == stallWarnStreak {
				r.log.Warn("filter chain keeps rejecting draws; the run may never finish",
					"consecutive_rejections", streak,
					"accepted", len(accepted),
					"wanted", r.cfg.Count)
			}
			continue
		}
		streak = 0

		r.chain.Observe(value)
		accepted = append(accepted, value)
		if r.emit != nil && !r.cfg.Quiet {
			r.emit.Emit(int64(len(accepted)), value)
		}
	}

	r.log.Debug("generation finished", "attempts", attempts, "accepted", len(accepted))
	return accepted, nil
}
