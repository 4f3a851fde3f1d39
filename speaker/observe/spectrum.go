package observe

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// ReferencePressure is the 0 dB SPL reference, 20 µPa rms.
const ReferencePressure = 20e-6

// Magnitude returns |X[k]| for each complex value.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im := split(in)
	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns |X[k]|² for each complex value.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im := split(in)
	vecmath.Power(out, re, im)
	return out
}

func split(in []complex128) (re, im []float64) {
	buf := make([]float64, 2*len(in))
	re, im = buf[:len(in)], buf[len(in):]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a new phase slice with ±2π discontinuities removed.
// NaN entries are passed through and do not reset the accumulated offset.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	offset := 0.0
	prev := math.NaN()
	for i, p := range phase {
		if math.IsNaN(p) {
			out[i] = p
			continue
		}
		if !math.IsNaN(prev) {
			d := p - prev
			offset -= 2 * math.Pi * math.Round(d/(2*math.Pi))
		}
		out[i] = p + offset
		prev = p
	}
	return out
}

// UnwrapDegrees unwraps the phase of in and returns it in degrees.
func UnwrapDegrees(in []complex128) []float64 {
	out := UnwrapPhase(Phase(in))
	for i := range out {
		out[i] *= 180 / math.Pi
	}
	return out
}

// GroupDelay computes −dφ/dω in seconds from unwrapped phase in radians
// sampled at the (not necessarily uniform) frequencies freqHz. Interior
// points use centred differences, the end points one-sided differences.
func GroupDelay(freqHz, unwrapped []float64) ([]float64, error) {
	if len(unwrapped) < 2 {
		return nil, fmt.Errorf("group delay requires at least 2 phase points: %d", len(unwrapped))
	}
	if len(freqHz) != len(unwrapped) {
		return nil, fmt.Errorf("group delay length mismatch: %d != %d", len(freqHz), len(unwrapped))
	}
	out := make([]float64, len(unwrapped))
	last := len(unwrapped) - 1
	for i := range unwrapped {
		lo, hi := i-1, i+1
		switch i {
		case 0:
			lo = 0
		case last:
			hi = last
		}
		dw := 2 * math.Pi * (freqHz[hi] - freqHz[lo])
		if !(dw > 0) {
			return nil, fmt.Errorf("group delay frequencies must be strictly increasing at index %d", i)
		}
		out[i] = -(unwrapped[hi] - unwrapped[lo]) / dw
	}
	return out, nil
}

// SmoothLevel applies 1/fraction-octave smoothing to a level curve in dB.
// Averaging is done on power; NaN points are skipped.
func SmoothLevel(freqHz, levelDB []float64, fraction int) ([]float64, error) {
	if len(freqHz) == 0 || len(levelDB) == 0 {
		return nil, fmt.Errorf("fractional-octave smoothing requires non-empty inputs")
	}
	if len(freqHz) != len(levelDB) {
		return nil, fmt.Errorf("fractional-octave input length mismatch: %d != %d", len(freqHz), len(levelDB))
	}
	if fraction <= 0 {
		return nil, fmt.Errorf("fractional-octave fraction must be > 0: %d", fraction)
	}
	for i := range freqHz {
		if freqHz[i] <= 0 {
			return nil, fmt.Errorf("fractional-octave frequencies must be > 0 at index %d", i)
		}
		if i > 0 && !(freqHz[i] > freqHz[i-1]) {
			return nil, fmt.Errorf("fractional-octave frequencies must be strictly increasing at index %d", i)
		}
	}

	out := make([]float64, len(levelDB))
	halfBand := math.Pow(2, 1/(2*float64(fraction)))

	for i, f := range freqHz {
		fLo := f / halfBand
		fHi := f * halfBand

		i0 := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] >= fLo })
		i1 := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] > fHi })

		sum, n := 0.0, 0
		for j := i0; j < i1; j++ {
			if math.IsNaN(levelDB[j]) {
				continue
			}
			sum += math.Pow(10, levelDB[j]/10)
			n++
		}
		if n == 0 {
			out[i] = levelDB[i]
			continue
		}
		out[i] = 10 * math.Log10(sum/float64(n))
	}

	return out, nil
}

// MeanLevel returns the power average in dB of levelDB over the points with
// lo <= f <= hi. It returns NaN when no finite point falls in the band.
func MeanLevel(freqHz, levelDB []float64, lo, hi float64) float64 {
	sum, n := 0.0, 0
	for i, f := range freqHz {
		if f < lo || f > hi || math.IsNaN(levelDB[i]) {
			continue
		}
		sum += math.Pow(10, levelDB[i]/10)
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return 10 * math.Log10(sum/float64(n))
}

// PowerToSPL converts a squared rms pressure in Pa² to dB SPL.
func PowerToSPL(p2 float64) float64 {
	return 10 * math.Log10(p2/(ReferencePressure*ReferencePressure))
}
