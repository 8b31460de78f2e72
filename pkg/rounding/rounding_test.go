package rounding

import (
	"math"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		in   float64
		want float64
	}{
		{"none passthrough", None, 3.7, 3.7},
		{"none negative", None, -0.25, -0.25},

		{"ceil up", Ceil, 3.2, 4},
		{"ceil integer", Ceil, 3.0, 3},
		{"ceil negative", Ceil, -3.2, -3},
		{"ceil boundary overshoot", Ceil, 0.1, 1},

		{"floor down", Floor, 3.9, 3},
		{"floor negative", Floor, -3.1, -4},

		{"round down", Round, 3.4, 3},
		{"round up", Round, 3.6, 4},
		{"round tie away from zero", Round, 2.5, 3},
		{"round negative tie away from zero", Round, -2.5, -3},

		{"trunc positive", Trunc, 3.9, 3},
		{"trunc negative toward zero", Trunc, -3.9, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.Apply(tt.in); got != tt.want {
				t.Errorf("%s.Apply(%v) = %v, want %v", tt.mode, tt.in, got, tt.want)
			}
		})
	}
}

// All modes map a half-open [0, 0.5] draw range onto whole numbers; ceil in
// particular overshoots the upper bound, which callers must tolerate.
func TestCeilOvershootsBounds(t *testing.T) {
	for _, v := range []float64{0.01, 0.25, 0.49999} {
		if got := Ceil.Apply(v); got != 1 {
			t.Errorf("Ceil.Apply(%v) = %v, want 1", v, got)
		}
	}
}

func TestApplyIdempotent(t *testing.T) {
	values := []float64{-7.5, -2.4, -0.5, 0, 0.49, 1.5, 3.14159, 1e12 + 0.3}
	for _, m := range []Mode{None, Ceil, Floor, Round, Trunc} {
		for _, v := range values {
			once := m.Apply(v)
			twice := m.Apply(once)
			if once != twice && !(math.IsNaN(once) && math.IsNaN(twice)) {
				t.Errorf("%s not idempotent at %v: once=%v twice=%v", m, v, once, twice)
			}
		}
	}
}

func TestActive(t *testing.T) {
	if None.Active() {
		t.Error("None should not be active")
	}
	for _, m := range []Mode{Ceil, Floor, Round, Trunc} {
		if !m.Active() {
			t.Errorf("%s should be active", m)
		}
	}
}
