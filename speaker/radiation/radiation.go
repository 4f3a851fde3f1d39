package radiation

import (
	"math"

	"github.com/cwbudde/algo-speaker/speaker/env"
)

// End corrections as multiples of the radius.
const (
	FlangedEndCorrection   = 8 / (3 * math.Pi) // ≈ 0.85
	UnflangedEndCorrection = 0.6133
)

// seriesLimit is the ka below which power series replace the Bessel/Struve
// forms.
const seriesLimit = 0.5

// unbaffledLimit is the ka above which the Levine-Schwinger expansion is no
// longer used.
const unbaffledLimit = 1.5

// Model is an acoustic radiation (or port) impedance in Pa·s/m³.
type Model interface {
	// Impedance returns the acoustic impedance at angular frequency w.
	Impedance(w float64) complex128
	// Radius returns the radius of the radiating surface in metres.
	Radius() float64
}

// Baffled is a rigid piston in an infinite baffle radiating into 2π.
type Baffled struct {
	radius float64
	env    env.Environment
}

// NewBaffled returns the 2π piston model for radius a.
func NewBaffled(a float64, e env.Environment) Baffled {
	return Baffled{radius: a, env: e}
}

// Radius returns the piston radius.
func (b Baffled) Radius() float64 { return b.radius }

// Mass returns the low-ka acoustic mass 8ρ₀/(3π²a).
func (b Baffled) Mass() float64 {
	return 8 * b.env.Density / (3 * math.Pi * math.Pi * b.radius)
}

// Impedance returns ρ₀c/(πa²)·[R₁(2ka) + jX₁(2ka)].
func (b Baffled) Impedance(w float64) complex128 {
	ka := w / b.env.SoundSpeed * b.radius
	r, x := pistonBaffled(ka)
	z0 := b.env.Impedance() / (math.Pi * b.radius * b.radius)
	return complex(z0*r, z0*x)
}

// Unbaffled is a piston at the end of a long tube radiating into 4π.
type Unbaffled struct {
	radius float64
	env    env.Environment
}

// NewUnbaffled returns the 4π piston model for radius a.
func NewUnbaffled(a float64, e env.Environment) Unbaffled {
	return Unbaffled{radius: a, env: e}
}

// Radius returns the piston radius.
func (u Unbaffled) Radius() float64 { return u.radius }

// Mass returns the low-ka acoustic mass ρ₀·0.6133a/(πa²).
func (u Unbaffled) Mass() float64 {
	return u.env.Density * UnflangedEndCorrection / (math.Pi * u.radius)
}

// Impedance returns the unbaffled radiation impedance.
func (u Unbaffled) Impedance(w float64) complex128 {
	ka := w / u.env.SoundSpeed * u.radius
	r, x := pistonUnbaffled(ka)
	z0 := u.env.Impedance() / (math.Pi * u.radius * u.radius)
	return complex(z0*r, z0*x)
}

// pistonBaffled returns the normalised resistance and reactance of a baffled
// piston.
func pistonBaffled(ka float64) (r, x float64) {
	z := 2 * ka
	if ka < seriesLimit {
		z2 := z * z
		r = z2/8 - z2*z2/192 + z2*z2*z2/9216
		x = 4 / math.Pi * (z/3 - z*z2/45 + z*z2*z2/1575)
		return r, x
	}
	r = 1 - 2*math.J1(z)/z
	x = 2 * struveH1(z) / z
	return r, x
}

// pistonUnbaffled uses the Levine-Schwinger low-ka expansion and, above
// unbaffledLimit, the baffled shape scaled to meet it.
func pistonUnbaffled(ka float64) (r, x float64) {
	if ka <= unbaffledLimit {
		return levineSchwinger(ka)
	}
	rl, xl := levineSchwinger(unbaffledLimit)
	rb, xb := pistonBaffled(unbaffledLimit)
	r, x = pistonBaffled(ka)
	// Blend the continuity scale towards 1 so the high-ka limit is ρ₀c/S.
	w := math.Exp(unbaffledLimit - ka)
	r *= w*(rl/rb) + (1 - w)
	x *= w*(xl/xb) + (1 - w)
	return r, x
}

func levineSchwinger(ka float64) (r, x float64) {
	k2 := ka * ka
	k3 := k2 * ka
	k4 := k2 * k2
	lk := math.Log(ka)
	r = k2/4 + 0.0127*k4 + 0.082*k4*lk - 0.023*k4*k2
	x = UnflangedEndCorrection*ka - 0.036*k3 + 0.034*k3*lk - 0.0187*k3*k2
	return r, x
}

// struveH1 approximates the Struve function H₁ (Aarts & Janssen, 2003).
// The absolute error stays below 0.005 for all z >= 0.
func struveH1(z float64) float64 {
	if z == 0 {
		return 0
	}
	return 2/math.Pi - math.J0(z) +
		(16/math.Pi-5)*math.Sin(z)/z +
		(12-36/math.Pi)*(1-math.Cos(z))/(z*z)
}
