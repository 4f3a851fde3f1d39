// Package grid builds the frequency grids a simulation is evaluated on.
package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-speaker/speaker/validate"
)

// Grid is a strictly increasing list of positive frequencies in Hz.
type Grid []float64

// New copies freqs into a Grid after validating it.
func New(freqs []float64) (Grid, error) {
	if err := validate.Grid(freqs); err != nil {
		return nil, err
	}
	return append(Grid(nil), freqs...), nil
}

// Validate checks that g is non-empty, positive, finite and strictly
// increasing.
func (g Grid) Validate() error { return validate.Grid(g) }

// Min returns the lowest frequency.
func (g Grid) Min() float64 { return g[0] }

// Max returns the highest frequency.
func (g Grid) Max() float64 { return g[len(g)-1] }

// Log returns n logarithmically spaced points from fmin to fmax inclusive.
func Log(fmin, fmax float64, n int) (Grid, error) {
	if err := checkRange(fmin, fmax, n); err != nil {
		return nil, err
	}
	if n == 1 {
		return Grid{fmin}, nil
	}
	g := floats.LogSpan(make([]float64, n), fmin, fmax)
	// exp(log(f)) is not always exact.
	g[0], g[n-1] = fmin, fmax
	return Grid(g), nil
}

// Linear returns n evenly spaced points from fmin to fmax inclusive.
func Linear(fmin, fmax float64, n int) (Grid, error) {
	if err := checkRange(fmin, fmax, n); err != nil {
		return nil, err
	}
	if n == 1 {
		return Grid{fmin}, nil
	}
	return Grid(floats.Span(make([]float64, n), fmin, fmax)), nil
}

// PerOctave returns a logarithmic grid from fmin with perOctave points per
// octave, ending at the last point not above fmax.
func PerOctave(fmin, fmax float64, perOctave int) (Grid, error) {
	if perOctave < 1 {
		return nil, validate.Errorf(validate.KindGrid, "perOctave", "must be >= 1: %d", perOctave)
	}
	if err := checkRange(fmin, fmax, 1); err != nil {
		return nil, err
	}
	steps := int(math.Floor(math.Log2(fmax/fmin)*float64(perOctave) + 1e-9))
	g := make(Grid, steps+1)
	for i := range g {
		g[i] = fmin * math.Exp2(float64(i)/float64(perOctave))
	}
	return g, nil
}

// ClampKa drops the frequencies above limit, typically the ka = 1 frequency
// of the driver. The result may be empty.
func ClampKa(g Grid, limit float64) Grid {
	n := len(g)
	for n > 0 && g[n-1] > limit {
		n--
	}
	return g[:n:n]
}

func checkRange(fmin, fmax float64, n int) error {
	return validate.First(
		validate.Positive(validate.KindGrid, "fmin", fmin),
		validate.Positive(validate.KindGrid, "fmax", fmax),
		rangeCheck(fmin, fmax, n),
	)
}

func rangeCheck(fmin, fmax float64, n int) error {
	switch {
	case n < 1:
		return validate.Errorf(validate.KindGrid, "points", "must be >= 1: %d", n)
	case n > 1 && !(fmax > fmin):
		return validate.Errorf(validate.KindGrid, "fmax", "must exceed fmin (%g <= %g)", fmax, fmin)
	}
	return nil
}
