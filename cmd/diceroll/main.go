// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"os"

	"github.com/diceroll-cli/diceroll/pkg/config"
	"github.com/diceroll-cli/diceroll/pkg/ux"
)

func main() {
	// Unanticipated faults are mapped to the generic known/unknown exit
	// codes instead of leaking a stack trace.
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				ux.Errorf("error: %v", err)
				os.Exit(config.ExitKnownError)
			}
			ux.Errorf("error: fault of unknown type: %v", r)
			os.Exit(config.ExitUnknownError)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		ux.Errorf("error: %v", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error to its process exit code. Classified
// configuration and run errors carry their own code; anything else is
// a recognized-but-generic fault.
func exitCodeFor(err error) int {
	var cerr *config.Error
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return config.ExitKnownError
}
