// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diceroll-cli/diceroll/pkg/config"
	"github.com/diceroll-cli/diceroll/pkg/engine"
	"github.com/diceroll-cli/diceroll/pkg/filter"
	"github.com/diceroll-cli/diceroll/pkg/generate"
	"github.com/diceroll-cli/diceroll/pkg/logging"
	"github.com/diceroll-cli/diceroll/pkg/stats"
	"github.com/diceroll-cli/diceroll/pkg/ux"
)

// =============================================================================
// COMMAND STATE
// =============================================================================

// cli carries one invocation's flag values. A fresh instance per
// command keeps tests independent of package state.
type cli struct {
	opts       config.Options
	configFile string
	verbose    bool
	logDir     string
	noColor    bool
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the diceroll command.
//
// # Description
//
// diceroll is a single-command CLI: every capability hangs off the root
// as a flag, mirroring the tool's original surface. Parsing failures
// are cobra's; everything after parsing is validated by pkg/config and
// reported with a kind-specific exit code.
//
// # Examples
//
//	diceroll -n 5                         # five numbers in [0, 1]
//	diceroll -n 10 -l 1 -u 6 --round      # ten die rolls
//	diceroll -n 100 -q --stat-all         # statistics only
//	diceroll -n 6 -l 1 -u 49 --round --norepeat --numbers-force
func newRootCmd() *cobra.Command {
	c := &cli{opts: config.Defaults()}

	cmd := &cobra.Command{
		Use:   "diceroll",
		Short: "Generate bounded random numbers with filtering and statistics",
		Long: `diceroll draws bounded floating-point values from a selectable
pseudo-random engine, optionally rounds them, filters them through
exclusion/inclusion/string-pattern rules, and reports summary statistics
over the accepted values.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.noColor {
				ux.SetEnabled(false)
			}
			return c.applyFileDefaults(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd)
		},
	}

	registerFlags(cmd, c)
	return cmd
}

// =============================================================================
// FLAG REGISTRATION
// =============================================================================

func registerFlags(cmd *cobra.Command, c *cli) {
	f := cmd.Flags()

	f.Int64VarP(&c.opts.Count, "number", "n", c.opts.Count,
		"count of numbers to be generated")
	f.Float64VarP(&c.opts.Lower, "lbound", "l", c.opts.Lower,
		"minimum number to be generated")
	f.Float64VarP(&c.opts.Upper, "ubound", "u", c.opts.Upper,
		"maximum number to be generated")

	f.BoolVarP(&c.opts.Ceil, "ceil", "c", false,
		"apply ceiling function to numbers")
	f.BoolVarP(&c.opts.Floor, "floor", "f", false,
		"apply floor function to numbers")
	f.BoolVarP(&c.opts.Round, "round", "r", false,
		"apply round function to numbers")
	f.BoolVarP(&c.opts.Trunc, "trunc", "t", false,
		"apply truncation to numbers")

	f.IntVarP(&c.opts.Precision, "precision", "p", c.opts.Precision,
		"output precision (not internal precision, cannot exceed float64 precision)")

	f.Float64SliceVarP(&c.opts.Excluded, "exclude", "x", nil,
		"exclude numbers from being printed, best with a rounding mode")
	f.Float64SliceVarP(&c.opts.Included, "include", "i", nil,
		"only print numbers from this set, best with a rounding mode")
	f.BoolVar(&c.opts.NoRepeat, "norepeat", false,
		"exclude repeated numbers from being printed, best with a rounding mode")
	f.StringSliceVar(&c.opts.Prefix, "prefix", nil,
		"only print when the number begins with string(s)")
	f.StringSliceVar(&c.opts.Suffix, "suffix", nil,
		"only print when the number ends with string(s)")
	f.StringSliceVar(&c.opts.Contains, "contains", nil,
		"only print when the number contains string(s)")

	f.BoolVar(&c.opts.List, "list", false,
		"print numbers in a list with positional numbers prefixed")
	f.StringVar(&c.opts.Delim, "delim", c.opts.Delim,
		"change the delimiter")
	f.BoolVarP(&c.opts.Quiet, "quiet", "q", false,
		"disable number output, useful when paired with stats")
	f.BoolVar(&c.opts.NumbersForce, "numbers-force", false,
		"force the count of numbers output to be equal to the number specified")
	f.Int64Var(&c.opts.MaxAttempts, "max-attempts", 0,
		"cap total draws under --numbers-force (0 = unlimited)")

	f.StringVarP(&c.opts.Generator, "generator", "g", c.opts.Generator,
		"change algorithm for the random number generator:\n - "+
			strings.Join(engine.Names(), "\n - "))

	f.BoolVar(&c.opts.StatMin, "stat-min", false,
		"print the lowest value generated")
	f.BoolVar(&c.opts.StatMax, "stat-max", false,
		"print the highest value generated")
	f.BoolVar(&c.opts.StatMedian, "stat-median", false,
		"print the median of the values generated")
	f.BoolVar(&c.opts.StatAvg, "stat-avg", false,
		"print the average of the values generated")
	f.BoolVar(&c.opts.StatVariance, "stat-variance", false,
		"print the population variance of the values generated")
	f.BoolVar(&c.opts.StatStdDev, "stat-stddev", false,
		"print the population standard deviation of the values generated")
	f.BoolVar(&c.opts.StatCV, "stat-cv", false,
		"print the coefficient of variation of the values generated")
	f.BoolVar(&c.opts.StatAll, "stat-all", false,
		"print every statistic")

	f.BoolVar(&c.opts.EchoFlags, "flags", false,
		"print the resolved configuration")

	f.StringVar(&c.configFile, "config", "",
		"YAML file providing defaults for unset flags")
	f.BoolVarP(&c.verbose, "verbose", "v", false,
		"enable debug logging on stderr")
	f.StringVar(&c.logDir, "log-dir", "",
		"directory for JSON log files")
	f.BoolVar(&c.noColor, "no-color", false,
		"disable styled output")
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// run executes the generate -> filter -> accumulate pipeline.
//
// # Description
//
// Validates the options into an immutable RunConfig, assembles the
// engine, filter chain and emitter, streams accepted values to stdout,
// and finishes with the requested statistics block. All error paths
// return a classified error; exit-code mapping happens in main.
func (c *cli) run(cmd *cobra.Command) error {
	c.opts.ExcludeGiven = cmd.Flags().Changed("exclude")

	cfg, err := c.opts.Validate()
	if err != nil {
		return err
	}

	level := logging.LevelInfo
	if c.verbose {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Config{Level: level, LogDir: c.logDir, Service: "diceroll"})
	defer logger.Close()

	out := cmd.OutOrStdout()

	if cfg.EchoFlags {
		if err := echoFlags(out, cfg); err != nil {
			return err
		}
	}

	gen, err := engine.New(cfg.Generator, cfg.Lower, cfg.Upper)
	if err != nil {
		// Validation already vetted the name; reaching this means the
		// registry and the validator disagree.
		return config.NewError(config.ExitUnknownGenerator, "--generator", "%v", err)
	}
	logger.Debug("engine selected", "generator", gen.Name(),
		"lbound", cfg.Lower, "ubound", cfg.Upper)

	chain := filter.New(filter.Config{
		Excluded:  cfg.Excluded,
		Included:  cfg.Included,
		NoRepeat:  cfg.NoRepeat,
		Prefix:    cfg.Prefix,
		Suffix:    cfg.Suffix,
		Contains:  cfg.Contains,
		Precision: cfg.Precision,
	})

	runner := generate.New(cfg, gen, chain, newStreamEmitter(out, cfg), logger)
	accepted, err := runner.Run()
	if err != nil {
		return err
	}

	if cfg.Delim != "\n" && !cfg.Quiet {
		fmt.Fprintln(out)
	}

	if cfg.Stats.Any() {
		if !cfg.Quiet {
			fmt.Fprintln(out)
		}
		printStats(out, stats.Compute(accepted, cfg.Stats), cfg)
	}

	return nil
}
