// Package driver derives a complete, self-consistent Thiele-Small model of a
// moving-coil loudspeaker from any sufficient subset of its parameters.
//
// # Derivation
//
// Fs and one inertial quantity fix the mechanical resonator:
//
//   - Mms given: Cms = 1/(Mms·ω₀²)
//   - Cms given: Mms = 1/(Cms·ω₀²)
//   - Vas given: Cms = Vas/(ρ₀c²Sd²), then Mms from Fs
//   - (Bl, Qes) given: Mms = Bl²·Qes/(Re·ω₀)
//
// Losses follow from the quality factors, Rms = ω₀·Mms/Qms and
// Bl² = Re·ω₀·Mms/Qes. A missing Q is inferred from the other two. When all
// three are supplied and 1/Qts differs from 1/Qms + 1/Qes by more than 1 %,
// Qms is refitted from (Qts, Qes) and a [WarnQmsRefit] warning is returned.
//
// Mms is understood as the free-air moving mass, i.e. it includes the
// radiation mass of both faces. [Model.MechanicalImpedance] uses the
// diaphragm mass Mmd = Mms − 16ρ₀a³/3 so the network can add back the load
// each face actually sees.
//
// # Usage
//
//	m, warnings, err := driver.Derive(driver.Parameters{
//		Re: 5, Le: 1.75e-3, Bl: 19.2, Sd: 0.088,
//		Fs: 40, Qts: 0.31, Qes: 0.33, Qms: 5,
//	}, env.Default())
package driver
