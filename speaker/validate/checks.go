package validate

import "math"

// Positive fails unless v is finite and > 0.
func Positive(kind Kind, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Errorf(kind, field, "must be finite and > 0: %g", v)
	}
	return nil
}

// PositiveOrInf fails unless v > 0. +Inf is accepted, which lets callers
// express an open circuit (for example an infinite leak resistance).
func PositiveOrInf(kind Kind, field string, v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return Errorf(kind, field, "must be > 0: %g", v)
	}
	return nil
}

// Optional fails when v is set (non-zero) but not finite and positive.
func Optional(kind Kind, field string, v float64) error {
	if v == 0 {
		return nil
	}
	return Positive(kind, field, v)
}

// NonNegative fails unless v is finite and >= 0.
func NonNegative(kind Kind, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return Errorf(kind, field, "must be finite and >= 0: %g", v)
	}
	return nil
}

// Grid fails unless freqs is non-empty, positive, finite and strictly
// increasing.
func Grid(freqs []float64) error {
	if len(freqs) == 0 {
		return Errorf(KindGrid, "freq", "frequency grid is empty")
	}
	for i, f := range freqs {
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return Errorf(KindGrid, "freq", "frequency at index %d must be finite and > 0: %g", i, f)
		}
		if i > 0 && !(f > freqs[i-1]) {
			return Errorf(KindGrid, "freq", "frequencies must be strictly increasing at index %d", i)
		}
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
