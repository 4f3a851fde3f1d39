package observe

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-speaker/speaker/network"
)

// DefaultMinStepSize is the smallest FFT used for step responses.
const DefaultMinStepSize = 1 << 14

// ErrSilentStep is returned when the step response is identically zero.
var ErrSilentStep = errors.New("observe: step response is zero")

// Evaluator evaluates a network at a single frequency.
type Evaluator interface {
	Response(f float64) (network.Point, error)
}

// StepResponse is the normalised far-field pressure step response.
type StepResponse struct {
	TimeMS     []float64
	X          []float64 // normalised to max |x| = 1
	SampleRate float64
}

// StepSize returns the FFT length used for a grid of the given size:
// max(2·nextPow2(points), minSize).
func StepSize(points, minSize int) int {
	n := 2 * nextPow2(points)
	if n < minSize {
		n = minSize
	}
	return n
}

// Step computes the pressure step response of ev. The spectrum is sampled
// at N/2+1 uniform bins up to fmax, with N = StepSize(points, minSize) and
// sample rate 2·fmax. Each bin is divided by jω, bin 0 is zero, bins the
// network marks unreliable are zero and the Nyquist bin is made real.
func Step(ev Evaluator, fmax float64, points, minSize int) (*StepResponse, error) {
	if !(fmax > 0) || math.IsInf(fmax, 0) {
		return nil, fmt.Errorf("observe: step response fmax must be finite and > 0: %g", fmax)
	}
	if points < 1 {
		return nil, fmt.Errorf("observe: step response needs at least one grid point: %d", points)
	}
	n := StepSize(points, minSize)
	fs := 2 * fmax

	spec, err := stepSpectrum(ev, n, fs)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("observe: failed to create FFT plan: %w", err)
	}
	td := make([]complex128, n)
	if err := plan.Inverse(td, spec); err != nil {
		return nil, fmt.Errorf("observe: inverse FFT failed: %w", err)
	}

	x := make([]float64, n)
	for i, v := range td {
		x[i] = real(v)
	}
	if err := normalise(x); err != nil {
		return nil, err
	}

	t := make([]float64, n)
	floats.Span(t, 0, 1e3*float64(n-1)/fs)
	return &StepResponse{TimeMS: t, X: x, SampleRate: fs}, nil
}

// stepSpectrum returns the full conjugate-symmetric spectrum P(f)/(jω) of
// length n.
func stepSpectrum(ev Evaluator, n int, fs float64) ([]complex128, error) {
	spec := make([]complex128, n)
	half := n / 2
	df := fs / float64(n)
	for k := 1; k <= half; k++ {
		f := float64(k) * df
		pt, err := ev.Response(f)
		if err != nil {
			return nil, err
		}
		if !pt.Reliable {
			continue
		}
		spec[k] = pt.Pressure / complex(0, 2*math.Pi*f)
	}
	spec[half] = complex(real(spec[half]), 0)
	for k := 1; k < half; k++ {
		v := spec[k]
		spec[n-k] = complex(real(v), -imag(v))
	}
	return spec, nil
}

func normalise(x []float64) error {
	peak := floats.Norm(x, math.Inf(1))
	if peak == 0 || math.IsNaN(peak) {
		return ErrSilentStep
	}
	floats.Scale(1/peak, x)
	return nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
