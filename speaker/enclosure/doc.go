// Package enclosure describes the acoustic load a cabinet presents to the two
// faces of a driver.
//
// Parameters is a closed set of topologies: InfiniteBaffle, Sealed,
// BassReflex and BandpassIsobaric. New turns one of them into a Load that the
// network solver queries per frequency for the face impedances and for the
// flow ratio of every radiating port.
//
// Boxes are lumped: a chamber is the compliance Vb/(ρ₀c²) in parallel with
// its leak resistance and its port. Leak resistances default to
// QL/(ω·C_ab) with QL = 7 at the box tuning; +Inf disables the leak.
package enclosure
