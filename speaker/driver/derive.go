package driver

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-speaker/speaker/env"
	"github.com/cwbudde/algo-speaker/speaker/validate"
)

// consistencyTolerance is the relative mismatch allowed between redundant
// parameters before one of them is refitted.
const consistencyTolerance = 0.01

// Derive completes p into a consistent Model.
//
// The mass is taken from Mms, Cms, Vas or (Bl, Qes), in that order, and Cms is
// always forced to 1/(Mms·ω₀²). Missing quality factors are inferred from the
// other two; an inconsistent triple is resolved by refitting Qms and reported
// as a warning. Failures match validate.ErrInvalidDriverParameters.
func Derive(p Parameters, e env.Environment) (*Model, []Warning, error) {
	if err := e.Validate(); err != nil {
		return nil, nil, err
	}
	if err := checkRanges(p); err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	ts := ThieleSmall{
		Re:   p.Re,
		Le:   p.Le,
		Red:  p.Red,
		Bl:   p.Bl,
		Sd:   p.Sd,
		Xmax: p.Xmax,
		Qts:  p.Qts,
		Qes:  p.Qes,
		Qms:  p.Qms,
	}

	ts.Fs = p.Fs
	if ts.Fs == 0 {
		if p.Mms == 0 || p.Cms == 0 {
			return nil, nil, validate.DriverErrorf("Fs", "Fs is required unless both Mms and Cms are given")
		}
		ts.Fs = 1 / (2 * math.Pi * math.Sqrt(p.Mms*p.Cms))
	}
	w0 := env.Omega(ts.Fs)

	// Quality factors known up front.
	w, err := resolveQ(&ts)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, w...)

	switch {
	case p.Mms > 0:
		ts.Mms = p.Mms
	case p.Cms > 0:
		ts.Mms = 1 / (p.Cms * w0 * w0)
	case p.Vas > 0:
		cms := p.Vas / (e.Stiffness() * p.Sd * p.Sd)
		ts.Mms = 1 / (cms * w0 * w0)
	case p.Bl > 0 && ts.Qes > 0:
		ts.Mms = p.Bl * p.Bl * ts.Qes / (p.Re * w0)
	default:
		return nil, nil, validate.DriverErrorf("Mms", "one of Mms, Cms, Vas or (Bl, Qes) is required")
	}
	ts.Cms = 1 / (ts.Mms * w0 * w0)
	ts.Vas = ts.Cms * e.Stiffness() * p.Sd * p.Sd

	switch {
	case p.Bl == 0:
		if ts.Qes == 0 {
			return nil, nil, validate.DriverErrorf("Bl", "Bl is required unless Qes can be determined")
		}
		ts.Bl = math.Sqrt(p.Re * w0 * ts.Mms / ts.Qes)
	case ts.Qes == 0:
		ts.Qes = p.Re * w0 * ts.Mms / (p.Bl * p.Bl)
	default:
		qes := p.Re * w0 * ts.Mms / (p.Bl * p.Bl)
		if math.Abs(qes-ts.Qes)/ts.Qes > consistencyTolerance {
			warnings = append(warnings, Warning{
				Kind:    WarnQesFromBl,
				Message: fmt.Sprintf("Qes %.4g disagrees with Bl; using %.4g", ts.Qes, qes),
			})
			ts.Qes = qes
			if p.Qms == 0 {
				// Qms was inferred from the stale Qes.
				ts.Qms = 0
			}
		}
	}

	switch {
	case ts.Qms == 0 && ts.Qts > 0:
		if ts.Qes <= ts.Qts {
			return nil, nil, validate.DriverErrorf("Qes", "Qes (%.4g) must exceed Qts (%.4g) to infer Qms", ts.Qes, ts.Qts)
		}
		ts.Qms = ts.Qts * ts.Qes / (ts.Qes - ts.Qts)
	case ts.Qms == 0:
		return nil, nil, validate.DriverErrorf("Qms", "Qms is required unless Qts is given")
	}
	ts.Qts = ts.Qes * ts.Qms / (ts.Qes + ts.Qms)

	ts.Rms = w0 * ts.Mms / ts.Qms

	a := math.Sqrt(p.Sd / math.Pi)
	air := airLoad(a, e)
	ts.Mmd = ts.Mms - air
	if ts.Mmd <= 0 {
		return nil, nil, validate.DriverErrorf("Mms", "moving mass %.4g kg does not exceed the air load %.4g kg", ts.Mms, air)
	}

	for _, v := range []float64{ts.Mms, ts.Cms, ts.Rms, ts.Bl, ts.Qes, ts.Qms, ts.Qts} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return nil, nil, validate.DriverErrorf("", "derived parameter set is not physical: %+v", ts)
		}
	}

	return &Model{ts: ts, radius: a, airMass: air, env: e}, warnings, nil
}

// resolveQ fills the quality factor that can be computed from the other two
// and checks a fully specified triple.
func resolveQ(ts *ThieleSmall) ([]Warning, error) {
	switch {
	case ts.Qts > 0 && ts.Qes > 0 && ts.Qms > 0:
		want := 1/ts.Qms + 1/ts.Qes
		if math.Abs(1/ts.Qts-want)*ts.Qts <= consistencyTolerance {
			return nil, nil
		}
		if ts.Qes <= ts.Qts {
			return nil, validate.DriverErrorf("Qes", "Qes (%.4g) must exceed Qts (%.4g) to refit Qms", ts.Qes, ts.Qts)
		}
		qms := ts.Qts * ts.Qes / (ts.Qes - ts.Qts)
		w := Warning{
			Kind:    WarnQmsRefit,
			Message: fmt.Sprintf("1/Qts != 1/Qms + 1/Qes; Qms refitted from %.4g to %.4g", ts.Qms, qms),
		}
		ts.Qms = qms
		return []Warning{w}, nil
	case ts.Qes > 0 && ts.Qts > 0:
		if ts.Qes <= ts.Qts {
			return nil, validate.DriverErrorf("Qes", "Qes (%.4g) must exceed Qts (%.4g) to infer Qms", ts.Qes, ts.Qts)
		}
		ts.Qms = ts.Qts * ts.Qes / (ts.Qes - ts.Qts)
	case ts.Qms > 0 && ts.Qts > 0:
		if ts.Qms <= ts.Qts {
			return nil, validate.DriverErrorf("Qms", "Qms (%.4g) must exceed Qts (%.4g) to infer Qes", ts.Qms, ts.Qts)
		}
		ts.Qes = ts.Qts * ts.Qms / (ts.Qms - ts.Qts)
	}
	return nil, nil
}

func checkRanges(p Parameters) error {
	k := validate.KindDriver
	return validate.First(
		validate.Positive(k, "Re", p.Re),
		validate.NonNegative(k, "Le", p.Le),
		validate.Optional(k, "Red", p.Red),
		validate.Optional(k, "Bl", p.Bl),
		validate.Positive(k, "Sd", p.Sd),
		validate.NonNegative(k, "Xmax", p.Xmax),
		validate.Optional(k, "Fs", p.Fs),
		validate.Optional(k, "Qts", p.Qts),
		validate.Optional(k, "Qes", p.Qes),
		validate.Optional(k, "Qms", p.Qms),
		validate.Optional(k, "Vas", p.Vas),
		validate.Optional(k, "Cms", p.Cms),
		validate.Optional(k, "Mms", p.Mms),
	)
}

// airLoad returns the mechanical air mass on both faces of a baffled piston
// of radius a at low ka, 16ρ₀a³/3.
func airLoad(a float64, e env.Environment) float64 {
	return 16 * e.Density * a * a * a / 3
}
