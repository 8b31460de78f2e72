package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/diceroll-cli/diceroll/pkg/config"
	"github.com/diceroll-cli/diceroll/pkg/stats"
	"github.com/diceroll-cli/diceroll/pkg/ux"
)

func TestStreamEmitterFormatting(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.RunConfig
		pos  int64
		val  float64
		want string
	}{
		{"default", config.RunConfig{Precision: 2, Delim: "\n"}, 1, 3.14159, "3.14\n"},
		{"precision zero", config.RunConfig{Precision: 0, Delim: "\n"}, 1, 3.7, "4\n"},
		{"custom delimiter", config.RunConfig{Precision: 1, Delim: ", "}, 1, 0.5, "0.5, "},
		{"list prefix", config.RunConfig{Precision: 0, Delim: "\n", List: true}, 3, 5, "3.\t5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newStreamEmitter(&buf, &tt.cfg).Emit(tt.pos, tt.val)
			if got := buf.String(); got != tt.want {
				t.Errorf("Emit wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatStat(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      string
	}{
		{2.5, 2, "2.50"},
		{2.5, 0, "2"},
		{math.NaN(), 2, "NaN"},
		{math.Inf(1), 2, "+Inf"},
		{math.Inf(-1), 2, "-Inf"},
	}
	for _, tt := range tests {
		if got := formatStat(tt.v, tt.precision); got != tt.want {
			t.Errorf("formatStat(%v, %d) = %q, want %q", tt.v, tt.precision, got, tt.want)
		}
	}
}

func TestPrintStatsOrderAndSelection(t *testing.T) {
	prev := ux.Enabled()
	ux.SetEnabled(false)
	defer ux.SetEnabled(prev)

	cfg := &config.RunConfig{Precision: 2}
	cfg.Stats = stats.Request{Min: true, Median: true, CV: true}

	values := []float64{1, 2, 3, 4}
	var buf bytes.Buffer
	printStats(&buf, stats.Compute(values, cfg.Stats), cfg)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("printed %d lines, want 3: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "min:") ||
		!strings.HasPrefix(lines[1], "median:") ||
		!strings.HasPrefix(lines[2], "cv:") {
		t.Errorf("unexpected order or labels: %v", lines)
	}
	// The historical median rule: [1,2,3,4] -> 2, not 2.5.
	if lines[1] != "median: 2.00" {
		t.Errorf("median line = %q, want %q", lines[1], "median: 2.00")
	}
}

func TestEchoFlagsContainsResolvedValues(t *testing.T) {
	opts := config.Defaults()
	opts.Round = true
	opts.Precision = 10
	cfg, err := opts.Validate()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := echoFlags(&buf, cfg); err != nil {
		t.Fatal(err)
	}
	dump := buf.String()
	if !strings.Contains(dump, "rounding: round") {
		t.Errorf("echo missing rounding mode: %s", dump)
	}
	// Rounding forces precision to 0; the echo shows post-validation state.
	if !strings.Contains(dump, "precision: 0") {
		t.Errorf("echo shows requested precision instead of resolved: %s", dump)
	}
	if !strings.Contains(dump, "generator: mt19937") {
		t.Errorf("echo missing generator: %s", dump)
	}
}
