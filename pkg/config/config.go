// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config validates and normalizes the run configuration.
//
// Raw flag values arrive as an Options struct; Validate classifies every
// rejection with its own error kind (and exit code) and returns an
// immutable RunConfig that the rest of the pipeline trusts blindly.
package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/diceroll-cli/diceroll/pkg/engine"
	"github.com/diceroll-cli/diceroll/pkg/rounding"
	"github.com/diceroll-cli/diceroll/pkg/stats"
)

// MaxPrecision is the largest output precision accepted: the number of
// decimal digits needed to round-trip any float64.
const MaxPrecision = 17

// Options holds raw flag values before validation.
//
// Field-range constraints are expressed as validator tags; everything
// that needs a specific error kind (rounding conflict, pattern syntax,
// generator membership, bounds ordering) is checked explicitly in
// Validate so each failure keeps its own exit code.
type Options struct {
	Count     int64   `yaml:"number" validate:"gte=1"`
	Lower     float64 `yaml:"lbound"`
	Upper     float64 `yaml:"ubound"`
	Precision int     `yaml:"precision" validate:"gte=0,lte=17"`

	Ceil  bool `yaml:"ceil"`
	Floor bool `yaml:"floor"`
	Round bool `yaml:"round"`
	Trunc bool `yaml:"trunc"`

	Excluded []float64 `yaml:"exclude"`
	Included []float64 `yaml:"include"`
	NoRepeat bool      `yaml:"norepeat"`
	Prefix   []string  `yaml:"prefix"`
	Suffix   []string  `yaml:"suffix"`
	Contains []string  `yaml:"contains"`

	List         bool   `yaml:"list"`
	Delim        string `yaml:"delim"`
	Quiet        bool   `yaml:"quiet"`
	NumbersForce bool   `yaml:"numbers-force"`
	Generator    string `yaml:"generator"`
	MaxAttempts  int64  `yaml:"max-attempts" validate:"gte=0"`

	StatMin      bool `yaml:"stat-min"`
	StatMax      bool `yaml:"stat-max"`
	StatMedian   bool `yaml:"stat-median"`
	StatAvg      bool `yaml:"stat-avg"`
	StatVariance bool `yaml:"stat-variance"`
	StatStdDev   bool `yaml:"stat-stddev"`
	StatCV       bool `yaml:"stat-cv"`
	StatAll      bool `yaml:"stat-all"`

	EchoFlags bool `yaml:"flags"`

	// ExcludeGiven marks that --exclude appeared on the command line,
	// so an empty excluded set can be told apart from an absent flag.
	ExcludeGiven bool `yaml:"-"`
}

// Defaults returns the Options matching the documented flag defaults.
func Defaults() Options {
	return Options{
		Count:     1,
		Lower:     0,
		Upper:     1,
		Precision: MaxPrecision,
		Delim:     "\n",
		Generator: engine.Default,
	}
}

// RunConfig is the validated, normalized configuration. It is immutable
// after Validate returns it.
type RunConfig struct {
	Count     int64   `yaml:"number"`
	Lower     float64 `yaml:"lbound"`
	Upper     float64 `yaml:"ubound"`
	Precision int     `yaml:"precision"`

	Mode rounding.Mode `yaml:"-"`
	// ModeName is the rounding mode for the --flags echo.
	ModeName string `yaml:"rounding"`

	Excluded []float64 `yaml:"exclude"`
	Included []float64 `yaml:"include"`
	NoRepeat bool      `yaml:"norepeat"`
	Prefix   []string  `yaml:"prefix"`
	Suffix   []string  `yaml:"suffix"`
	Contains []string  `yaml:"contains"`

	List         bool   `yaml:"list"`
	Delim        string `yaml:"delim"`
	Quiet        bool   `yaml:"quiet"`
	NumbersForce bool   `yaml:"numbers-force"`
	Generator    string `yaml:"generator"`
	MaxAttempts  int64  `yaml:"max-attempts"`

	Stats     stats.Request `yaml:"stats"`
	EchoFlags bool          `yaml:"-"`
}

var validate = validator.New()

// Validate checks o and returns the normalized RunConfig.
//
// # Description
//
// Checks run in a fixed order so the reported failure is deterministic:
// count, rounding conflict, precision range, bounds ordering, excluded
// args presence, pattern syntax, generator membership. When a rounding
// mode is active the requested precision is silently overridden to 0;
// that normalization happens here, once, so the output path never has
// to re-derive it.
//
// # Outputs
//
//   - *RunConfig: immutable resolved configuration
//   - error: a *Error whose Code is the exit code for the failure kind
func (o Options) Validate() (*RunConfig, error) {
	fieldErrs := map[string]string{}
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrs[fe.StructField()] = fe.Tag()
			}
		}
	}

	if _, bad := fieldErrs["Count"]; bad {
		return nil, NewError(ExitZeroCount, "--number", "n must be >= 1")
	}

	mode, err := o.roundingMode()
	if err != nil {
		return nil, err
	}

	precision := o.Precision
	if mode.Active() {
		// Documented side effect, not an error: rounded output has no
		// fractional digits to print or to pattern-match against.
		precision = 0
	} else if tag, bad := fieldErrs["Precision"]; bad {
		if tag == "lte" {
			return nil, NewError(ExitPrecisionOver, "--precision",
				"cannot be greater than the precision for float64 (%d)", MaxPrecision)
		}
		return nil, NewError(ExitPrecisionUnder, "--precision", "cannot be less than zero")
	}

	if o.Lower > o.Upper {
		return nil, NewError(ExitInvertedBounds, "--lbound", "lower bound exceeds upper bound")
	}

	if o.ExcludeGiven && len(o.Excluded) == 0 {
		return nil, NewError(ExitEmptyExclude, "--exclude",
			"specified without arguments (arguments are separated by spaces)")
	}

	for _, set := range [][]string{o.Prefix, o.Suffix, o.Contains} {
		for _, pattern := range set {
			if !numericPattern(pattern) {
				return nil, &Error{
					Code: ExitBadPattern,
					msg:  "--prefix, --suffix, and --contains can only be numbers",
				}
			}
		}
	}

	if _, bad := fieldErrs["MaxAttempts"]; bad {
		return nil, NewError(ExitKnownError, "--max-attempts", "cannot be negative")
	}

	if !engine.Supported(o.Generator) {
		return nil, NewError(ExitUnknownGenerator, "--generator",
			"must be one of: %s", strings.Join(engine.Names(), ", "))
	}

	delim := o.Delim
	if delim == "" {
		delim = "\n"
	}

	return &RunConfig{
		Count:        o.Count,
		Lower:        o.Lower,
		Upper:        o.Upper,
		Precision:    precision,
		Mode:         mode,
		ModeName:     mode.String(),
		Excluded:     o.Excluded,
		Included:     o.Included,
		NoRepeat:     o.NoRepeat,
		Prefix:       o.Prefix,
		Suffix:       o.Suffix,
		Contains:     o.Contains,
		List:         o.List,
		Delim:        delim,
		Quiet:        o.Quiet,
		NumbersForce: o.NumbersForce,
		Generator:    o.Generator,
		MaxAttempts:  o.MaxAttempts,
		Stats:        o.statsRequest(),
		EchoFlags:    o.EchoFlags,
	}, nil
}

// roundingMode folds the four mutually exclusive switches into a Mode.
func (o Options) roundingMode() (rounding.Mode, error) {
	selected := 0
	for _, on := range []bool{o.Ceil, o.Floor, o.Round, o.Trunc} {
		if on {
			selected++
		}
	}
	if selected > 1 {
		return rounding.None, &Error{
			Code: ExitRoundingConflict,
			msg:  "--ceil, --floor, --round, and --trunc are mutually exclusive",
		}
	}
	switch {
	case o.Ceil:
		return rounding.Ceil, nil
	case o.Floor:
		return rounding.Floor, nil
	case o.Round:
		return rounding.Round, nil
	case o.Trunc:
		return rounding.Trunc, nil
	default:
		return rounding.None, nil
	}
}

func (o Options) statsRequest() stats.Request {
	if o.StatAll {
		return stats.All()
	}
	return stats.Request{
		Min:      o.StatMin,
		Max:      o.StatMax,
		Median:   o.StatMedian,
		Mean:     o.StatAvg,
		Variance: o.StatVariance,
		StdDev:   o.StatStdDev,
		CV:       o.StatCV,
	}
}

// numericPattern reports whether s contains only digits and at most one
// decimal point.
func numericPattern(s string) bool {
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
