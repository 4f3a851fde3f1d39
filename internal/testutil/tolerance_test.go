package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffIdentical(t *testing.T) {
	a := []float64{1, 2, 3}

	d, err := MaxAbsDiff(a, a)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if d != 0 {
		t.Fatalf("MaxAbsDiff = %v, want 0 for identical slices", d)
	}
}

func TestLocalExtrema(t *testing.T) {
	x := []float64{0, 2, 1, 3, 0, 0, 1}

	maxima := LocalMaxima(x)
	if len(maxima) != 2 || maxima[0] != 1 || maxima[1] != 3 {
		t.Fatalf("LocalMaxima = %v, want [1 3]", maxima)
	}
	minima := LocalMinima(x)
	if len(minima) != 1 || minima[0] != 2 {
		t.Fatalf("LocalMinima = %v, want [2]", minima)
	}
	if got := Select(x, maxima); got[0] != 2 || got[1] != 3 {
		t.Fatalf("Select = %v", got)
	}
}

func TestNearestIndex(t *testing.T) {
	xs := []float64{1, 2, 4, 8}
	if i := NearestIndex(xs, 5); i != 2 {
		t.Fatalf("NearestIndex = %d, want 2", i)
	}
	if i := NearestIndex(xs, 100); i != 3 {
		t.Fatalf("NearestIndex = %d, want 3", i)
	}
}
