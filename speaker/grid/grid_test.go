package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-speaker/internal/testutil"
	"github.com/cwbudde/algo-speaker/speaker/validate"
)

func TestLog(t *testing.T) {
	g, err := Log(10, 1000, 5)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	want := []float64{10, 10 * math.Sqrt(10), 100, 100 * math.Sqrt(10), 1000}
	testutil.RequireSliceNearlyEqual(t, g, want, 1e-9)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.Min() != 10 || math.Abs(g.Max()-1000) > 1e-9 {
		t.Fatalf("range %g..%g", g.Min(), g.Max())
	}
}

func TestLinear(t *testing.T) {
	g, err := Linear(100, 500, 5)
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, g, []float64{100, 200, 300, 400, 500}, 1e-9)
}

func TestPerOctave(t *testing.T) {
	g, err := PerOctave(20, 160, 3)
	if err != nil {
		t.Fatalf("PerOctave: %v", err)
	}
	if len(g) != 10 {
		t.Fatalf("len=%d want 10", len(g))
	}
	if math.Abs(g[3]-40) > 1e-9 || math.Abs(g[9]-160) > 1e-9 {
		t.Fatalf("grid %v", g)
	}
}

func TestClampKa(t *testing.T) {
	g := Grid{10, 100, 200, 400}
	c := ClampKa(g, 326)
	if len(c) != 3 || c.Max() != 200 {
		t.Fatalf("ClampKa = %v", c)
	}
	if len(ClampKa(g, 1)) != 0 {
		t.Fatal("expected empty grid")
	}
}

func TestInvalidGrids(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"zero fmin", func() error { _, err := Log(0, 100, 10); return err }()},
		{"reversed", func() error { _, err := Linear(100, 10, 10); return err }()},
		{"no points", func() error { _, err := Log(10, 100, 0); return err }()},
		{"per octave", func() error { _, err := PerOctave(10, 100, 0); return err }()},
		{"unsorted", func() error { _, err := New([]float64{1, 3, 2}); return err }()},
		{"empty", func() error { _, err := New(nil); return err }()},
		{"nan", func() error { _, err := New([]float64{1, math.NaN()}); return err }()},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, validate.ErrInvalidParameters) {
			t.Fatalf("%s: expected ErrInvalidParameters, got %v", tc.name, tc.err)
		}
	}
}
