package driver

import (
	"math"

	"github.com/cwbudde/algo-speaker/speaker/env"
)

// Model is a derived, immutable moving-coil driver.
type Model struct {
	ts      ThieleSmall
	radius  float64
	airMass float64
	env     env.Environment
}

// ThieleSmall returns a copy of the complete parameter set.
func (m *Model) ThieleSmall() ThieleSmall { return m.ts }

// Re returns the voice-coil resistance.
func (m *Model) Re() float64 { return m.ts.Re }

// Bl returns the force factor.
func (m *Model) Bl() float64 { return m.ts.Bl }

// Sd returns the piston area.
func (m *Model) Sd() float64 { return m.ts.Sd }

// Xmax returns the linear excursion limit (0 if unknown).
func (m *Model) Xmax() float64 { return m.ts.Xmax }

// Fs returns the free-air resonance.
func (m *Model) Fs() float64 { return m.ts.Fs }

// Vas returns the equivalent compliance volume.
func (m *Model) Vas() float64 { return m.ts.Vas }

// Mms returns the moving mass including the free-air load.
func (m *Model) Mms() float64 { return m.ts.Mms }

// Cms returns the suspension compliance.
func (m *Model) Cms() float64 { return m.ts.Cms }

// Rms returns the mechanical loss resistance.
func (m *Model) Rms() float64 { return m.ts.Rms }

// Radius returns the equivalent piston radius √(Sd/π).
func (m *Model) Radius() float64 { return m.radius }

// AirMass returns the mechanical air load on both faces that is included in
// Mms. The solver replaces it with the actual face loads.
func (m *Model) AirMass() float64 { return m.airMass }

// KaFrequency returns ka·c/(2πa), the frequency at which the piston reaches ka.
func (m *Model) KaFrequency(ka float64) float64 {
	return m.env.KaFrequency(m.radius, ka)
}

// BlockedImpedance returns Re + (jωLe ∥ Red).
func (m *Model) BlockedImpedance(w float64) complex128 {
	zl := complex(0, w*m.ts.Le)
	if m.ts.Red > 0 && m.ts.Le > 0 {
		red := complex(m.ts.Red, 0)
		zl = zl * red / (zl + red)
	}
	return complex(m.ts.Re, 0) + zl
}

// MechanicalImpedance returns Rms + jωMmd + 1/(jωCms), the suspension and
// diaphragm without any air load.
func (m *Model) MechanicalImpedance(w float64) complex128 {
	return complex(m.ts.Rms, w*m.ts.Mmd-1/(w*m.ts.Cms))
}

// Efficiency returns the half-space reference efficiency
// η₀ = ρ₀·Bl²·Sd²/(2πc·Re·Mms²).
func (m *Model) Efficiency() float64 {
	ts := m.ts
	return m.env.Density * ts.Bl * ts.Bl * ts.Sd * ts.Sd /
		(2 * math.Pi * m.env.SoundSpeed * ts.Re * ts.Mms * ts.Mms)
}

// Sensitivity returns the half-space level at 1 W into Re at 1 m in dB SPL,
// 10·log₁₀(η₀) + 112.1.
func (m *Model) Sensitivity() float64 {
	pref := 20e-6
	w := m.env.Impedance() / (2 * math.Pi * pref * pref)
	return 10*math.Log10(m.Efficiency()) + 10*math.Log10(w)
}

// Isobaric returns the equivalent single driver of two identical units in
// series-mechanical, parallel-electrical configuration: Re, Le and Red halve,
// Mms and Rms double, Cms halves, Bl and Sd are unchanged. Only the two outer
// faces carry an air load.
func (m *Model) Isobaric() *Model {
	ts := m.ts
	ts.Re /= 2
	ts.Le /= 2
	ts.Red /= 2
	ts.Mms *= 2
	ts.Cms /= 2
	ts.Rms *= 2
	ts.Mmd = ts.Mms - m.airMass
	ts.Vas /= 2
	return &Model{ts: ts, radius: m.radius, airMass: m.airMass, env: m.env}
}
