package validate

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestParameterErrorMatching(t *testing.T) {
	err := Errorf(KindEnclosure, "Vb", "must be > 0")
	if !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters match")
	}
	if errors.Is(err, ErrInvalidDriverParameters) {
		t.Fatalf("enclosure error must not match ErrInvalidDriverParameters")
	}

	derr := DriverErrorf("Qes", "Qes must exceed Qts")
	wrapped := fmt.Errorf("simulate: %w", derr)
	if !errors.Is(wrapped, ErrInvalidParameters) || !errors.Is(wrapped, ErrInvalidDriverParameters) {
		t.Fatalf("driver error must match both sentinels")
	}

	var pe *ParameterError
	if !errors.As(wrapped, &pe) {
		t.Fatalf("errors.As failed")
	}
	if pe.Kind != KindDriver || pe.Field != "Qes" {
		t.Fatalf("unexpected payload: %+v", pe)
	}
}

func TestParameterErrorMessage(t *testing.T) {
	got := Errorf(KindGrid, "", "empty").Error()
	if got != "invalid grid parameters: empty" {
		t.Fatalf("message=%q", got)
	}
	got = Errorf(KindDriver, "Re", "bad").Error()
	if got != "invalid driver parameter Re: bad" {
		t.Fatalf("message=%q", got)
	}
}

func TestPositive(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if Positive(KindDriver, "x", v) == nil {
			t.Fatalf("Positive(%v) should fail", v)
		}
	}
	if err := Positive(KindDriver, "x", 1e-9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := PositiveOrInf(KindEnclosure, "RLeak", math.Inf(1)); err != nil {
		t.Fatalf("+Inf should be accepted: %v", err)
	}
	if err := Optional(KindDriver, "Red", 0); err != nil {
		t.Fatalf("unset optional should pass: %v", err)
	}
	if Optional(KindDriver, "Red", -3) == nil {
		t.Fatalf("negative optional should fail")
	}
}

func TestGrid(t *testing.T) {
	cases := []struct {
		name  string
		freqs []float64
		ok    bool
	}{
		{"empty", nil, false},
		{"zero", []float64{0, 1}, false},
		{"descending", []float64{10, 5}, false},
		{"duplicate", []float64{10, 10}, false},
		{"nan", []float64{1, math.NaN()}, false},
		{"valid", []float64{1, 2, 4}, true},
	}
	for _, tc := range cases {
		err := Grid(tc.freqs)
		if (err == nil) != tc.ok {
			t.Fatalf("%s: err=%v", tc.name, err)
		}
	}
}
