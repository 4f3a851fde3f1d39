package testutil

import (
	"math"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DampedStep returns the step response 1 − e^(−t/τ)·cos(2πft) of a second
// order system, sampled at sampleRate.
func DampedStep(freqHz, tau, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = 1 - math.Exp(-t/tau)*math.Cos(2*math.Pi*freqHz*t)
	}
	return out
}

// DampedRing returns e^(−t/τ)·sin(2πft), the ringing of a high-pass
// resonance after a step.
func DampedRing(freqHz, tau, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = math.Exp(-t/tau) * math.Sin(2*math.Pi*freqHz*t)
	}
	return out
}

// LogSpaced returns n logarithmically spaced frequencies from lo to hi.
func LogSpaced(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	r := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(r*float64(i)/float64(n-1))
	}
	out[n-1] = hi
	return out
}
