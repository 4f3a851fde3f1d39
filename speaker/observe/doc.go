// Package observe turns a network solution into the quantities a designer
// looks at.
//
// Frequency-domain observables (impedance, SPL and phase, cone and port
// contributions, excursion, velocities, group delay) are derived from a
// network.Solution by Derive. Step computes the normalised pressure step
// response by sampling the network on a uniform grid and inverting it with
// an FFT; AnalyzeStep extracts peak, rise time, undershoot and ringing.
//
// The spectrum helpers (Magnitude, UnwrapPhase, GroupDelay, SmoothLevel)
// work on plain slices and are usable on their own.
package observe
