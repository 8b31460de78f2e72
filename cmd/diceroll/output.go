// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/diceroll-cli/diceroll/pkg/config"
	"github.com/diceroll-cli/diceroll/pkg/filter"
	"github.com/diceroll-cli/diceroll/pkg/stats"
	"github.com/diceroll-cli/diceroll/pkg/ux"
)

// streamEmitter prints each accepted value the moment it is accepted,
// in generation order. Values are rendered through the same fixed-point
// formatter the pattern filters match against, so what the user sees is
// exactly what was filtered.
type streamEmitter struct {
	w         io.Writer
	precision int
	delim     string
	list      bool
}

func newStreamEmitter(w io.Writer, cfg *config.RunConfig) *streamEmitter {
	return &streamEmitter{
		w:         w,
		precision: cfg.Precision,
		delim:     cfg.Delim,
		list:      cfg.List,
	}
}

// Emit writes one accepted value, prefixed with its 1-based position in
// list mode and followed by the configured delimiter.
func (e *streamEmitter) Emit(position int64, value float64) {
	if e.list {
		fmt.Fprintf(e.w, "%d.\t", position)
	}
	fmt.Fprint(e.w, filter.Render(value, e.precision), e.delim)
}

// printStats writes the labeled statistics block in fixed order.
func printStats(w io.Writer, rep stats.Report, cfg *config.RunConfig) {
	lines := []struct {
		on    bool
		label string
		value float64
	}{
		{cfg.Stats.Min, "min", rep.Min},
		{cfg.Stats.Max, "max", rep.Max},
		{cfg.Stats.Median, "median", rep.Median},
		{cfg.Stats.Mean, "avg", rep.Mean},
		{cfg.Stats.Variance, "variance", rep.Variance},
		{cfg.Stats.StdDev, "stddev", rep.StdDev},
		{cfg.Stats.CV, "cv", rep.CV},
	}
	for _, line := range lines {
		if !line.on {
			continue
		}
		fmt.Fprintf(w, "%s %s\n",
			ux.StatLabel(line.label+":"),
			ux.StatValue(formatStat(line.value, cfg.Precision)))
	}
}

// formatStat renders a statistic at the output precision. Non-finite
// results (empty population, zero-mean CV) are printed as markers, not
// forced into a fixed-point shape.
func formatStat(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return filter.Render(v, precision)
}

// echoFlags dumps the resolved configuration as YAML, the --flags
// behavior. The dump reflects post-validation state, so a precision
// overridden by a rounding mode shows as 0 here.
func echoFlags(w io.Writer, cfg *config.RunConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
