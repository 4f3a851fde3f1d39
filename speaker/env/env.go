// Package env holds the physical constants of the propagation medium.
//
// An [Environment] is a plain value passed explicitly to every constructor;
// the simulator keeps no process-wide constants.
package env

import (
	"math"

	"github.com/cwbudde/algo-speaker/speaker/validate"
)

// Default air properties.
const (
	DefaultDensity    = 1.20    // kg/m³
	DefaultSoundSpeed = 343.0   // m/s
	DefaultViscosity  = 1.56e-5 // Pa·s
)

// Environment describes the air the loudspeaker radiates into.
type Environment struct {
	Density    float64 // ρ₀ in kg/m³
	SoundSpeed float64 // c in m/s
	Viscosity  float64 // μ in Pa·s
}

// Default returns room-temperature air.
func Default() Environment {
	return Environment{
		Density:    DefaultDensity,
		SoundSpeed: DefaultSoundSpeed,
		Viscosity:  DefaultViscosity,
	}
}

// Validate rejects non-positive or non-finite constants.
func (e Environment) Validate() error {
	return validate.First(
		validate.Positive(validate.KindEnvironment, "Density", e.Density),
		validate.Positive(validate.KindEnvironment, "SoundSpeed", e.SoundSpeed),
		validate.Positive(validate.KindEnvironment, "Viscosity", e.Viscosity),
	)
}

// Omega returns the angular frequency 2πf.
func Omega(f float64) float64 { return 2 * math.Pi * f }

// K returns the acoustic wavenumber ω/c at frequency f.
func (e Environment) K(f float64) float64 {
	return Omega(f) / e.SoundSpeed
}

// Wavelength returns c/f.
func (e Environment) Wavelength(f float64) float64 {
	return e.SoundSpeed / f
}

// Impedance returns the characteristic impedance ρ₀c of the medium.
func (e Environment) Impedance() float64 {
	return e.Density * e.SoundSpeed
}

// Stiffness returns the adiabatic bulk modulus ρ₀c² used for box compliances.
func (e Environment) Stiffness() float64 {
	return e.Density * e.SoundSpeed * e.SoundSpeed
}

// KaFrequency returns the frequency at which a piston of radius a reaches the
// given ka.
func (e Environment) KaFrequency(a, ka float64) float64 {
	return ka * e.SoundSpeed / (2 * math.Pi * a)
}
