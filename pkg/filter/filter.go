// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package filter implements the acceptance filter chain.
//
// A drawn (and already rounded) value passes through an ordered sequence
// of predicates; the first failing predicate rejects it. The ordering is
// fixed for performance, not semantics: the predicates are independent.
//
//  1. excluded-set: reject on exact equality with any excluded value
//  2. included-set: if non-empty, reject unless exactly equal to a member
//  3. no-repeat: reject values already accepted this run
//  4. prefix/suffix/contains: string match against the fixed-point
//     rendering of the value at the configured output precision
//
// Equality is exact float64 equality throughout; there is no tolerance.
package filter

import (
	"strconv"
	"strings"
)

// Reason identifies which predicate rejected a value.
type Reason int

const (
	// ReasonNone means the value was accepted.
	ReasonNone Reason = iota

	// ReasonExcluded means the value matched the excluded set.
	ReasonExcluded

	// ReasonNotIncluded means a non-empty included set did not contain it.
	ReasonNotIncluded

	// ReasonRepeat means the value was already accepted and no-repeat is on.
	ReasonRepeat

	// ReasonPrefix means no prefix pattern matched.
	ReasonPrefix

	// ReasonSuffix means no suffix pattern matched.
	ReasonSuffix

	// ReasonContains means no substring pattern matched.
	ReasonContains
)

// String returns a short name for logging.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "accepted"
	case ReasonExcluded:
		return "excluded"
	case ReasonNotIncluded:
		return "not_included"
	case ReasonRepeat:
		return "repeat"
	case ReasonPrefix:
		return "prefix"
	case ReasonSuffix:
		return "suffix"
	case ReasonContains:
		return "contains"
	default:
		return "unknown"
	}
}

// Config carries the filter settings resolved during validation.
type Config struct {
	// Excluded values are rejected on exact equality.
	Excluded []float64

	// Included, when non-empty, is an allow-list: only its members pass.
	// A value in both sets is always rejected; the excluded test runs first.
	Included []float64

	// NoRepeat rejects values already accepted during this run.
	NoRepeat bool

	// Prefix, Suffix and Contains are digit-and-dot pattern sets matched
	// against the value's fixed-point string at Precision decimal places.
	// An empty set skips its test entirely.
	Prefix   []string
	Suffix   []string
	Contains []string

	// Precision is the output precision used for the string rendering.
	Precision int
}

// Chain evaluates the acceptance predicates for one run.
//
// Chain is not safe for concurrent use; the generation loop owns it.
type Chain struct {
	cfg  Config
	seen map[float64]struct{}
}

// New builds a Chain from resolved filter settings.
func New(cfg Config) *Chain {
	c := &Chain{cfg: cfg}
	if cfg.NoRepeat {
		c.seen = make(map[float64]struct{})
	}
	return c
}

// Accept decides whether v survives the full chain.
//
// # Description
//
// Runs the predicates in their fixed order and short-circuits on the
// first rejection. Accept does not record v as accepted; callers must
// invoke Observe after appending the value to the accepted sequence,
// otherwise no-repeat has nothing to compare against.
//
// # Outputs
//
//   - bool: true when the value passed every active predicate
//   - Reason: ReasonNone on acceptance, otherwise the rejecting predicate
func (c *Chain) Accept(v float64) (bool, Reason) {
	if containsValue(c.cfg.Excluded, v) {
		return false, ReasonExcluded
	}
	if len(c.cfg.Included) > 0 && !containsValue(c.cfg.Included, v) {
		return false, ReasonNotIncluded
	}
	if c.cfg.NoRepeat {
		if _, ok := c.seen[v]; ok {
			return false, ReasonRepeat
		}
	}

	if len(c.cfg.Prefix) > 0 || len(c.cfg.Suffix) > 0 || len(c.cfg.Contains) > 0 {
		// Patterns match the decimal rendering the user will see, at the
		// configured precision, not the full internal precision.
		s := Render(v, c.cfg.Precision)
		if len(c.cfg.Prefix) > 0 && !matchAny(s, c.cfg.Prefix, strings.HasPrefix) {
			return false, ReasonPrefix
		}
		if len(c.cfg.Suffix) > 0 && !matchAny(s, c.cfg.Suffix, strings.HasSuffix) {
			return false, ReasonSuffix
		}
		if len(c.cfg.Contains) > 0 && !matchAny(s, c.cfg.Contains, strings.Contains) {
			return false, ReasonContains
		}
	}

	return true, ReasonNone
}

// Observe records an accepted value for the no-repeat predicate.
func (c *Chain) Observe(v float64) {
	if c.seen != nil {
		c.seen[v] = struct{}{}
	}
}

// Render returns the fixed-point decimal string for v at the given
// precision. This is the exact rendering the pattern predicates match
// against and the CLI prints.
func Render(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func containsValue(set []float64, v float64) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

func matchAny(s string, patterns []string, pred func(string, string) bool) bool {
	for _, p := range patterns {
		if pred(s, p) {
			return true
		}
	}
	return false
}
