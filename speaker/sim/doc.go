// Package sim is the single entry point of the loudspeaker simulator.
//
// Simulate takes a Thiele-Small parameter set, an enclosure description and
// a frequency grid and returns every observable in one immutable Results
// value:
//
//	g, _ := grid.Log(10, 1000, 500)
//	res, err := sim.Simulate(
//		driver.Parameters{Re: 5, Le: 1.75e-3, Bl: 19.2, Sd: 0.088, Fs: 40, Qts: 0.31, Qes: 0.33, Qms: 5},
//		enclosure.Sealed{Vb: 0.030},
//		g,
//		sim.WithStepResponse(true),
//	)
//
// Results marshals to JSON with the field names freq, Z, Z_mag, SPL, … used
// by downstream tooling. Unreliable frequencies are NaN in memory and null
// in JSON.
package sim
