package network

// Impedance conversions between the electrical, mechanical and acoustic
// domains of a piston of area sd driven by a motor with force factor bl.

// MechanicalToAcoustic converts a mechanical impedance (N·s/m) to acoustic
// ohms (Pa·s/m³): Z/Sd².
func MechanicalToAcoustic(zm complex128, sd float64) complex128 {
	return zm / complex(sd*sd, 0)
}

// AcousticToMechanical converts acoustic ohms to a mechanical impedance:
// Z·Sd².
func AcousticToMechanical(za complex128, sd float64) complex128 {
	return za * complex(sd*sd, 0)
}

// ElectricalToAcoustic returns the acoustic impedance Bl²/(Sd²·Ze) that the
// electrical source impedance ze presents in the acoustic loop.
func ElectricalToAcoustic(ze complex128, bl, sd float64) complex128 {
	return complex(bl*bl/(sd*sd), 0) / ze
}

// AcousticToElectrical returns the motional impedance Bl²/(Sd²·Za) that an
// acoustic loop impedance za reflects into the voice coil.
func AcousticToElectrical(za complex128, bl, sd float64) complex128 {
	return complex(bl*bl/(sd*sd), 0) / za
}

// SourcePressure returns the equivalent acoustic source pressure
// v·Bl/(Sd·Ze) of a voltage v applied across ze.
func SourcePressure(v float64, ze complex128, bl, sd float64) complex128 {
	return complex(v*bl/sd, 0) / ze
}
