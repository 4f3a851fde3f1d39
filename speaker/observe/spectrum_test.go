package observe

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-speaker/internal/testutil"
)

func TestMagnitudeAndPower(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, -2), 0}
	testutil.RequireSliceNearlyEqual(t, Magnitude(in), []float64{5, 2, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Power(in), []float64{25, 4, 0}, 1e-12)
	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Fatal("empty input must return nil")
	}
}

func TestUnwrapPhase(t *testing.T) {
	// A linear phase ramp wrapped into (-π, π].
	n := 50
	want := make([]float64, n)
	wrapped := make([]float64, n)
	for i := range want {
		want[i] = -0.4 * float64(i)
		wrapped[i] = cmplx.Phase(cmplx.Rect(1, want[i]))
	}
	testutil.RequireSliceNearlyEqual(t, UnwrapPhase(wrapped), want, 1e-9)
}

func TestUnwrapPhaseSkipsNaN(t *testing.T) {
	in := []float64{3, math.NaN(), -3}
	out := UnwrapPhase(in)
	if !math.IsNaN(out[1]) {
		t.Fatalf("NaN not preserved: %v", out)
	}
	if math.Abs(out[2]-(2*math.Pi-3)) > 1e-12 {
		t.Fatalf("unwrap across NaN = %v, want %v", out[2], 2*math.Pi-3)
	}
}

func TestUnwrapDegrees(t *testing.T) {
	got := UnwrapDegrees([]complex128{complex(0, 1), -1})
	testutil.RequireSliceNearlyEqual(t, got, []float64{90, 180}, 1e-9)
}

func TestGroupDelayOfPureDelay(t *testing.T) {
	tau := 2.5e-3
	freqs := testutil.LogSpaced(10, 1000, 300)
	phase := make([]float64, len(freqs))
	for i, f := range freqs {
		phase[i] = -2 * math.Pi * f * tau
	}
	gd, err := GroupDelay(freqs, phase)
	if err != nil {
		t.Fatalf("GroupDelay: %v", err)
	}
	for i, v := range gd {
		if math.Abs(v-tau) > 1e-12 {
			t.Fatalf("index %d: group delay %v, want %v", i, v, tau)
		}
	}
}

func TestGroupDelayErrors(t *testing.T) {
	if _, err := GroupDelay([]float64{1}, []float64{0}); err == nil {
		t.Fatal("expected error for a single point")
	}
	if _, err := GroupDelay([]float64{1, 2}, []float64{0}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
	if _, err := GroupDelay([]float64{2, 1}, []float64{0, 0}); err == nil {
		t.Fatal("expected error for decreasing frequencies")
	}
}

func TestSmoothLevel(t *testing.T) {
	freqs := testutil.LogSpaced(20, 20000, 200)
	flat := make([]float64, len(freqs))
	for i := range flat {
		flat[i] = 90
	}
	got, err := SmoothLevel(freqs, flat, 3)
	if err != nil {
		t.Fatalf("SmoothLevel: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, flat, 1e-9)

	// A single notch is filled in by the neighbouring bands.
	flat[100] = 60
	got, err = SmoothLevel(freqs, flat, 3)
	if err != nil {
		t.Fatalf("SmoothLevel: %v", err)
	}
	if got[100] < 85 {
		t.Fatalf("smoothed notch %v dB", got[100])
	}
	if _, err := SmoothLevel(freqs, flat, 0); err == nil {
		t.Fatal("expected error for zero fraction")
	}
}

func TestMeanLevel(t *testing.T) {
	freqs := []float64{100, 200, 300, 400}
	levels := []float64{90, 90, 93.0103, math.NaN()}
	// Power mean of 1, 1, 2 (×1e9) is 4/3.
	got := MeanLevel(freqs, levels, 100, 400)
	want := 90 + 10*math.Log10(4.0/3)
	if math.Abs(got-want) > 1e-3 {
		t.Fatalf("MeanLevel = %v, want %v", got, want)
	}
	if !math.IsNaN(MeanLevel(freqs, levels, 1000, 2000)) {
		t.Fatal("empty band must be NaN")
	}
}

func TestPowerToSPL(t *testing.T) {
	if got := PowerToSPL(1); math.Abs(got-93.9794) > 1e-3 {
		t.Fatalf("1 Pa = %v dB SPL", got)
	}
	if got := PowerToSPL(4); math.Abs(got-100) > 1e-9 {
		t.Fatalf("2 Pa = %v dB SPL", got)
	}
	if got := PowerToSPL(0); !math.IsInf(got, -1) {
		t.Fatalf("silence = %v dB SPL", got)
	}
}
