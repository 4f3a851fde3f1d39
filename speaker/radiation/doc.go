// Package radiation provides acoustic radiation impedances of pistons and
// ports in acoustic units (Pa·s/m³).
//
// Three variants implement [Model]:
//
//   - [Baffled]: rigid piston in an infinite baffle (2π), exact Bessel/Struve
//     form with a power series below ka = 0.5.
//   - [Unbaffled]: piston at the end of a tube in free space (4π),
//     Levine-Schwinger low-ka expansion.
//   - [Port]: vent air column with inner end correction, viscous wall loss and
//     a baffled or unbaffled mouth.
//
// All models are values; they hold no mutable state.
package radiation
