// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package stats computes summary statistics over the accepted sequence.
//
// All statistics are population statistics: variance and standard
// deviation divide by N, not N-1. The median follows the tool's
// historical rule (see Median), which differs from the conventional
// even-length average.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Request selects which statistics the caller wants reported.
//
// Each field is independently togglable; All() enables every one.
type Request struct {
	Min      bool `yaml:"min"`
	Max      bool `yaml:"max"`
	Median   bool `yaml:"median"`
	Mean     bool `yaml:"avg"`
	Variance bool `yaml:"variance"`
	StdDev   bool `yaml:"stddev"`
	CV       bool `yaml:"cv"`
}

// All returns a Request with every statistic enabled.
func All() Request {
	return Request{Min: true, Max: true, Median: true, Mean: true, Variance: true, StdDev: true, CV: true}
}

// Any reports whether at least one statistic was requested.
func (r Request) Any() bool {
	return r.Min || r.Max || r.Median || r.Mean || r.Variance || r.StdDev || r.CV
}

// Report holds the computed statistics for one accepted sequence.
//
// Fields for statistics that were not requested are NaN. With an empty
// input sequence every field is NaN; an empty population is a degenerate
// input, never a fault.
type Report struct {
	N        int
	Min      float64
	Max      float64
	Median   float64
	Mean     float64
	Variance float64
	StdDev   float64
	CV       float64
}

// Compute calculates the requested statistics over values.
//
// # Description
//
// The input slice is never reordered: Median sorts an internal copy, so
// a caller that already streamed the values in generation order keeps
// that order. Division by the population size is guarded by the empty
// check; CV is stddev/mean and is non-finite when the mean is zero,
// which is reported as-is rather than treated as an error.
//
// # Inputs
//
//   - values: the accepted sequence, in generation order
//   - req: which statistics to compute
//
// # Outputs
//
//   - Report: requested statistics, NaN for the rest
func Compute(values []float64, req Request) Report {
	rep := Report{
		N:        len(values),
		Min:      math.NaN(),
		Max:      math.NaN(),
		Median:   math.NaN(),
		Mean:     math.NaN(),
		Variance: math.NaN(),
		StdDev:   math.NaN(),
		CV:       math.NaN(),
	}
	if len(values) == 0 {
		return rep
	}

	if req.Min {
		rep.Min = floats.Min(values)
	}
	if req.Max {
		rep.Max = floats.Max(values)
	}
	if req.Median {
		rep.Median = Median(values)
	}
	if req.Mean || req.CV {
		rep.Mean = stat.Mean(values, nil)
	}
	if req.Variance {
		rep.Variance = stat.PopVariance(values, nil)
	}
	if req.StdDev || req.CV {
		rep.StdDev = stat.PopStdDev(values, nil)
	}
	if req.CV {
		rep.CV = rep.StdDev / rep.Mean
	}

	// Clear the intermediates that were only needed for CV.
	if !req.Mean {
		rep.Mean = math.NaN()
	}
	if !req.StdDev {
		rep.StdDev = math.NaN()
	}
	return rep
}

// Median returns the median under the tool's historical rule.
//
// # Description
//
// Odd-length sequences yield the middle order statistic. Even-length
// sequences yield the average of the lower-middle element and the
// maximum of the lower half. For [1,2,3,4] that is (2+max{1,2})/2 = 2,
// not the conventional (2+3)/2 = 2.5. The rule is preserved exactly.
//
// The input is not modified; sorting happens on a copy.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)

	mid := len(s) / 2
	m := s[mid]
	if len(s)%2 == 0 {
		m = (s[mid-1] + floats.Max(s[:mid])) / 2
	}
	return m
}
