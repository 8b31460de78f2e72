// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import "fmt"

// Exit codes for the CLI. Every validation failure kind maps to its own
// code so scripts can tell exactly what was rejected.
const (
	ExitSuccess           = 0  // Run completed (also: help requested)
	ExitKnownError        = 1  // Recognized runtime fault
	ExitUnknownError      = 2  // Unrecognized runtime fault
	ExitZeroCount         = 3  // --number below 1
	ExitRoundingConflict  = 4  // More than one rounding mode selected
	ExitPrecisionOver     = 5  // --precision above the float64 maximum
	ExitPrecisionUnder    = 6  // --precision below zero
	ExitEmptyExclude      = 7  // --exclude given without arguments
	ExitBadPattern        = 9  // Pattern with non-digit/dot characters; 8 is retired
	ExitUnknownGenerator  = 10 // --generator outside the engine set
	ExitInvertedBounds    = 11 // --lbound above --ubound
	ExitAttemptsExhausted = 12 // --max-attempts cap hit under --numbers-force
)

// Error is a classified configuration or run failure.
//
// # Description
//
// Carries the exit code for its failure kind and the offending option
// name, so the top level can report specifically what was wrong and
// exit with the matching code.
type Error struct {
	// Code is the process exit code for this failure kind.
	Code int

	// Option is the flag that caused the failure, e.g. "--precision".
	Option string

	msg string
}

// Error returns the human-readable message, prefixed with the offending
// option when one is known.
func (e *Error) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("the argument for option '%s' is invalid (%s)", e.Option, e.msg)
	}
	return e.msg
}

// NewError builds a classified Error.
func NewError(code int, option, format string, args ...any) *Error {
	return &Error{Code: code, Option: option, msg: fmt.Sprintf(format, args...)}
}
