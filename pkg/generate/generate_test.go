package generate

import (
	"errors"
	"testing"

	"github.com/diceroll-cli/diceroll/pkg/config"
	"github.com/diceroll-cli/diceroll/pkg/filter"
	"github.com/diceroll-cli/diceroll/pkg/logging"
	"github.com/diceroll-cli/diceroll/pkg/rounding"
)

// seqGen replays a fixed cycle of values, keeping the loop deterministic.
type seqGen struct {
	values []float64
	i      int
}

func (g *seqGen) Next() float64 {
	v := g.values[g.i%len(g.values)]
	g.i++
	return v
}

func (g *seqGen) Name() string { return "seq" }

type capture struct {
	positions []int64
	values    []float64
}

func (c *capture) Emit(position int64, value float64) {
	c.positions = append(c.positions, position)
	c.values = append(c.values, value)
}

func quietLogger() *logging.Logger {
	return logging.New(logging.Config{Quiet: true})
}

func runWith(t *testing.T, cfg *config.RunConfig, gen *seqGen, fcfg filter.Config) ([]float64, *capture, error) {
	t.Helper()
	out := &capture{}
	runner := New(cfg, gen, filter.New(fcfg), out, quietLogger())
	accepted, err := runner.Run()
	return accepted, out, err
}

func TestCountDrawsWithoutFilters(t *testing.T) {
	cfg := &config.RunConfig{Count: 5, Precision: 2}
	accepted, out, err := runWith(t, cfg, &seqGen{values: []float64{1.5, 2.5, 3.5}}, filter.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 5 {
		t.Fatalf("accepted %d values, want 5", len(accepted))
	}
	// Streaming order matches generation order, positions are 1-based.
	want := []float64{1.5, 2.5, 3.5, 1.5, 2.5}
	for i, v := range want {
		if accepted[i] != v || out.values[i] != v {
			t.Errorf("value %d = %v (emitted %v), want %v", i, accepted[i], out.values[i], v)
		}
		if out.positions[i] != int64(i+1) {
			t.Errorf("position %d = %d, want %d", i, out.positions[i], i+1)
		}
	}
}

// Without numbers-force a rejected draw still consumes the count
// budget, so strict filters shrink the output.
func TestRejectionsConsumeBudget(t *testing.T) {
	cfg := &config.RunConfig{Count: 6}
	accepted, _, err := runWith(t, cfg,
		&seqGen{values: []float64{1, 2}},
		filter.Config{Excluded: []float64{2}})
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 3 {
		t.Fatalf("accepted %d values, want 3 (every other draw excluded)", len(accepted))
	}
	for _, v := range accepted {
		if v != 1 {
			t.Errorf("excluded value leaked through: %v", v)
		}
	}
}

// Under numbers-force rejections are retried until exactly count
// values are accepted.
func TestNumbersForceRetries(t *testing.T) {
	cfg := &config.RunConfig{Count: 4, NumbersForce: true}
	accepted, _, err := runWith(t, cfg,
		&seqGen{values: []float64{7, 7, 7, 1}},
		filter.Config{Excluded: []float64{7}})
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 4 {
		t.Fatalf("accepted %d values, want exactly 4", len(accepted))
	}
}

func TestNumbersForceAttemptCap(t *testing.T) {
	cfg := &config.RunConfig{Count: 2, NumbersForce: true, MaxAttempts: 50}
	accepted, _, err := runWith(t, cfg,
		&seqGen{values: []float64{7}},
		filter.Config{Excluded: []float64{7}})

	if err == nil {
		t.Fatal("expected attempt-cap error")
	}
	var cerr *config.Error
	if !errors.As(err, &cerr) || cerr.Code != config.ExitAttemptsExhausted {
		t.Fatalf("error = %v, want attempts-exhausted kind", err)
	}
	if len(accepted) != 0 {
		t.Errorf("accepted %d values, want 0", len(accepted))
	}
}

func TestNoRepeatProducesDistinctValues(t *testing.T) {
	cfg := &config.RunConfig{Count: 3, NumbersForce: true}
	accepted, _, err := runWith(t, cfg,
		&seqGen{values: []float64{1, 1, 2, 2, 3, 3}},
		filter.Config{NoRepeat: true})
	if err != nil {
		t.Fatal(err)
	}
	seen := map[float64]bool{}
	for _, v := range accepted {
		if seen[v] {
			t.Fatalf("repeated value %v in %v", v, accepted)
		}
		seen[v] = true
	}
	if len(accepted) != 3 {
		t.Fatalf("accepted %d values, want 3", len(accepted))
	}
}

func TestRoundingAppliedBeforeFiltering(t *testing.T) {
	// 1.2 rounds to 1, which is excluded; 2.7 rounds to 3, which passes.
	cfg := &config.RunConfig{Count: 2, Mode: rounding.Round}
	accepted, _, err := runWith(t, cfg,
		&seqGen{values: []float64{1.2, 2.7}},
		filter.Config{Excluded: []float64{1}})
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 1 || accepted[0] != 3 {
		t.Fatalf("accepted = %v, want [3]", accepted)
	}
}

func TestQuietSuppressesEmission(t *testing.T) {
	cfg := &config.RunConfig{Count: 3, Quiet: true}
	accepted, out, err := runWith(t, cfg, &seqGen{values: []float64{1}}, filter.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 3 {
		t.Fatalf("accepted %d values, want 3", len(accepted))
	}
	if len(out.values) != 0 {
		t.Errorf("quiet mode emitted %d values", len(out.values))
	}
}

func TestNilEmitter(t *testing.T) {
	cfg := &config.RunConfig{Count: 2}
	runner := New(cfg, &seqGen{values: []float64{1}}, filter.New(filter.Config{}), nil, quietLogger())
	accepted, err := runner.Run()
	if err != nil || len(accepted) != 2 {
		t.Fatalf("accepted = %v, err = %v", accepted, err)
	}
}
