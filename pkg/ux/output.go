// Copyright (C) 2025 The diceroll Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the diceroll CLI.
//
// Styling only decorates the statistics block and error reporting; the
// generated numbers themselves are printed bare so they stay pipeable.
// Color is disabled automatically when stdout is not a terminal or when
// NO_COLOR is set.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Dice table palette - felt greens and ivory
var (
	ColorFeltBright = lipgloss.Color("#36C98C") // Bright felt green - highlights
	ColorFelt       = lipgloss.Color("#1F9D6B") // Primary felt green
	ColorIvory      = lipgloss.Color("#F5F1E3") // Ivory - die faces, values
	ColorPip        = lipgloss.Color("#2B2B2B") // Pip black - muted text
	ColorWarning    = lipgloss.Color("#F4D03F") // Gold for warnings
	ColorError      = lipgloss.Color("#E74C3C") // Red for errors
	ColorMuted      = lipgloss.Color("#6B7B73") // Grey-green for muted text
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorFeltBright),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	StatLabel: lipgloss.NewStyle().Foreground(ColorFelt),
	StatValue: lipgloss.NewStyle().Foreground(ColorIvory),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
}

var colorEnabled = detectColor()

func detectColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Enabled reports whether styled output is active.
func Enabled() bool { return colorEnabled }

// SetEnabled overrides color detection (used by --no-color and tests).
func SetEnabled(on bool) { colorEnabled = on }

// StatLabel styles a statistic label like "median:".
func StatLabel(text string) string {
	if !colorEnabled {
		return text
	}
	return Styles.StatLabel.Render(text)
}

// StatValue styles a statistic value.
func StatValue(text string) string {
	if !colorEnabled {
		return text
	}
	return Styles.StatValue.Render(text)
}

// Errorf prints a styled error line to stderr.
func Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if colorEnabled {
		msg = Styles.Error.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}
