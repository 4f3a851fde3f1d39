package radiation

import (
	"math"

	"github.com/cwbudde/algo-speaker/speaker/env"
)

// Port is a circular vent of geometric length Length. The inner end inside
// the box carries the unflanged end correction; the outer end radiates
// through a baffled (Flanged) or unbaffled mouth.
type Port struct {
	radius  float64
	length  float64
	flanged bool
	env     env.Environment
	mouth   Model
}

// NewPort returns a port of radius a and geometric length l.
func NewPort(a, l float64, flanged bool, e env.Environment) Port {
	p := Port{radius: a, length: l, flanged: flanged, env: e}
	if flanged {
		p.mouth = NewBaffled(a, e)
	} else {
		p.mouth = NewUnbaffled(a, e)
	}
	return p
}

// EndCorrection returns the total end correction (both ends) in metres.
func EndCorrection(a float64, flanged bool) float64 {
	outer := UnflangedEndCorrection
	if flanged {
		outer = FlangedEndCorrection
	}
	return (UnflangedEndCorrection + outer) * a
}

// LengthForTuning returns the geometric port length that tunes a box of
// volume vb to fp, i.e. l = c²·A/((2πfp)²·Vb) − end corrections. The result
// may be non-positive when the port is too wide for the tuning.
func LengthForTuning(a, vb, fp float64, flanged bool, e env.Environment) float64 {
	area := math.Pi * a * a
	w := env.Omega(fp)
	leff := e.SoundSpeed * e.SoundSpeed * area / (w * w * vb)
	return leff - EndCorrection(a, flanged)
}

// TuningForLength inverts LengthForTuning.
func TuningForLength(a, vb, l float64, flanged bool, e env.Environment) float64 {
	area := math.Pi * a * a
	leff := l + EndCorrection(a, flanged)
	return e.SoundSpeed / (2 * math.Pi) * math.Sqrt(area/(leff*vb))
}

// Radius returns the port radius.
func (p Port) Radius() float64 { return p.radius }

// Length returns the geometric length.
func (p Port) Length() float64 { return p.length }

// Area returns the cross-section πa².
func (p Port) Area() float64 { return math.Pi * p.radius * p.radius }

// Mass returns the acoustic mass of the air column plus the inner end
// correction. The outer end correction is part of the mouth impedance.
func (p Port) Mass() float64 {
	return p.env.Density * (p.length + UnflangedEndCorrection*p.radius) / p.Area()
}

// ViscousResistance returns the boundary-layer loss (l/A)·√(2ρ₀μω)/a.
func (p Port) ViscousResistance(w float64) float64 {
	return p.length / p.Area() * math.Sqrt(2*p.env.Density*p.env.Viscosity*w) / p.radius
}

// Impedance returns jωM_ap + R_visc + Z_mouth.
func (p Port) Impedance(w float64) complex128 {
	return complex(p.ViscousResistance(w), w*p.Mass()) + p.mouth.Impedance(w)
}

// Mouth returns the radiation impedance of the outer end.
func (p Port) Mouth(w float64) complex128 {
	return p.mouth.Impedance(w)
}
