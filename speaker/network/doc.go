// Package network solves the coupled electro-mechano-acoustic circuit of a
// driver in its enclosure.
//
// Every quantity is mapped into the acoustic domain. The voice coil becomes a
// pressure source p = V·Bl/(Sd·Ze) behind the impedance Bl²/(Sd²·Ze), the
// suspension becomes Zm/Sd², and the enclosure contributes its face loads.
// The cone volume velocity is then a single division, and port flows follow
// from the enclosure's transfer ratios. Far-field pressure uses
// p = jωρ₀/(Ω·r)·U with Ω = 2π (half space) or 4π.
//
// Frequencies where the loop impedance cancels numerically are flagged as
// unreliable rather than regularised.
package network
