// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/diceroll-cli/diceroll/pkg/config"
)

// applyFileDefaults merges a --config YAML file into the options.
//
// # Description
//
// Flags given on the command line always win; the file only fills in
// values for flags the user did not set. The file uses the same keys as
// the long flag names (number, lbound, ubound, exclude, ...), so a
// frequently used invocation can be saved verbatim.
//
// # Example
//
//	# dice.yaml
//	lbound: 1
//	ubound: 6
//	round: true
//	norepeat: true
//
//	diceroll --config dice.yaml -n 3
func (c *cli) applyFileDefaults(cmd *cobra.Command) error {
	if c.configFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.configFile)
	if err != nil {
		return config.NewError(config.ExitKnownError, "--config", "%v", err)
	}

	fileOpts := config.Defaults()
	if err := yaml.Unmarshal(data, &fileOpts); err != nil {
		return config.NewError(config.ExitKnownError, "--config", "invalid YAML: %v", err)
	}

	flags := cmd.Flags()
	keep := func(name string) bool { return !flags.Changed(name) }

	if keep("number") {
		c.opts.Count = fileOpts.Count
	}
	if keep("lbound") {
		c.opts.Lower = fileOpts.Lower
	}
	if keep("ubound") {
		c.opts.Upper = fileOpts.Upper
	}
	if keep("precision") {
		c.opts.Precision = fileOpts.Precision
	}
	if keep("ceil") {
		c.opts.Ceil = fileOpts.Ceil
	}
	if keep("floor") {
		c.opts.Floor = fileOpts.Floor
	}
	if keep("round") {
		c.opts.Round = fileOpts.Round
	}
	if keep("trunc") {
		c.opts.Trunc = fileOpts.Trunc
	}
	if keep("exclude") {
		c.opts.Excluded = fileOpts.Excluded
	}
	if keep("include") {
		c.opts.Included = fileOpts.Included
	}
	if keep("norepeat") {
		c.opts.NoRepeat = fileOpts.NoRepeat
	}
	if keep("prefix") {
		c.opts.Prefix = fileOpts.Prefix
	}
	if keep("suffix") {
		c.opts.Suffix = fileOpts.Suffix
	}
	if keep("contains") {
		c.opts.Contains = fileOpts.Contains
	}
	if keep("list") {
		c.opts.List = fileOpts.List
	}
	if keep("delim") {
		c.opts.Delim = fileOpts.Delim
	}
	if keep("quiet") {
		c.opts.Quiet = fileOpts.Quiet
	}
	if keep("numbers-force") {
		c.opts.NumbersForce = fileOpts.NumbersForce
	}
	if keep("max-attempts") {
		c.opts.MaxAttempts = fileOpts.MaxAttempts
	}
	if keep("generator") {
		c.opts.Generator = fileOpts.Generator
	}
	if keep("stat-min") {
		c.opts.StatMin = fileOpts.StatMin
	}
	if keep("stat-max") {
		c.opts.StatMax = fileOpts.StatMax
	}
	if keep("stat-median") {
		c.opts.StatMedian = fileOpts.StatMedian
	}
	if keep("stat-avg") {
		c.opts.StatAvg = fileOpts.StatAvg
	}
	if keep("stat-variance") {
		c.opts.StatVariance = fileOpts.StatVariance
	}
	if keep("stat-stddev") {
		c.opts.StatStdDev = fileOpts.StatStdDev
	}
	if keep("stat-cv") {
		c.opts.StatCV = fileOpts.StatCV
	}
	if keep("stat-all") {
		c.opts.StatAll = fileOpts.StatAll
	}
	if keep("flags") {
		c.opts.EchoFlags = fileOpts.EchoFlags
	}

	return nil
}
