package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDampedStepSettles(t *testing.T) {
	s := DampedStep(40, 0.01, 10000, 2000)
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[len(s)-1]-1) > 1e-6 {
		t.Fatalf("final value %v, want 1", s[len(s)-1])
	}
}

func TestDampedRingDecays(t *testing.T) {
	r := DampedRing(40, 0.01, 10000, 2000)
	if r[0] != 0 {
		t.Fatalf("r[0] = %v, want 0", r[0])
	}
	if math.Abs(r[len(r)-1]) > 1e-6 {
		t.Fatalf("final value %v, want 0", r[len(r)-1])
	}
}

func TestLogSpaced(t *testing.T) {
	g := LogSpaced(10, 1000, 3)
	RequireSliceNearlyEqual(t, g, []float64{10, 100, 1000}, 1e-9)

	if one := LogSpaced(5, 50, 1); len(one) != 1 || one[0] != 5 {
		t.Fatalf("single point grid = %v", one)
	}
}
