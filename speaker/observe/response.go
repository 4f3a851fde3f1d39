package observe

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-speaker/speaker/network"
)

// Response holds the observables of a network solution, one entry per
// frequency. Quantities at unreliable frequencies are NaN.
//
// Voltage and pressure are rms; displacement and velocities are peak values.
type Response struct {
	Freq                []float64
	Z                   []complex128
	ZMag                []float64
	ZPhaseDeg           []float64
	SPL                 []float64
	SPLPhaseDeg         []float64
	SPLCone             []float64 // nil when the cone does not radiate
	SPLPort             []float64 // nil without ports
	PortVolumeVelocity  [][]float64
	PortVelocity        [][]float64
	DisplacementMM      []float64
	DisplacementPhase   []float64
	Velocity            []float64
	GroupDelayMS        []float64
	ExcursionLimitedSPL []float64 // nil when Xmax is unknown
}

// Derive computes the observables of sol.
func Derive(sol *network.Solution) (*Response, error) {
	n := sol.Len()
	r := &Response{
		Freq:           append([]float64(nil), sol.Freq...),
		Z:              append([]complex128(nil), sol.ZIn...),
		ZMag:           Magnitude(sol.ZIn),
		ZPhaseDeg:      UnwrapDegrees(maskComplex(sol.ZIn, sol.Reliable)),
		SPL:            level(sol.Pressure),
		DisplacementMM: make([]float64, n),
		Velocity:       make([]float64, n),
	}

	// Unwrap only across reliable points. The reported SPL phase carries
	// the +90° of the radiation derivative on top of arg(p).
	p := maskComplex(sol.Pressure, sol.Reliable)
	r.SPLPhaseDeg = UnwrapDegrees(p)
	for i := range r.SPLPhaseDeg {
		r.SPLPhaseDeg[i] += 90
	}

	if sol.ConeRadiates {
		r.SPLCone = level(sol.PressureCone)
	}
	if len(sol.Outlets) > 0 {
		r.SPLPort = level(sol.PressurePort)
		r.PortVolumeVelocity = make([][]float64, len(sol.Outlets))
		r.PortVelocity = make([][]float64, len(sol.Outlets))
		for k, o := range sol.Outlets {
			mag := Magnitude(sol.UOutlets[k])
			vel := make([]float64, n)
			for i := range mag {
				mag[i] *= math.Sqrt2
				vel[i] = mag[i] / o.Port.Area()
			}
			r.PortVolumeVelocity[k] = mag
			r.PortVelocity[k] = vel
		}
	}

	x := make([]complex128, n)
	for i, f := range sol.Freq {
		w := 2 * math.Pi * f
		x[i] = sol.UCone[i] / complex(0, w*sol.Sd)
		r.Velocity[i] = math.Sqrt2 * cmplx.Abs(sol.UCone[i]) / sol.Sd
	}
	xmag := Magnitude(x)
	for i := range xmag {
		r.DisplacementMM[i] = 1e3 * math.Sqrt2 * xmag[i]
	}
	r.DisplacementPhase = UnwrapDegrees(maskComplex(x, sol.Reliable))

	if n > 1 {
		rad := UnwrapPhase(Phase(p))
		gd, err := GroupDelay(sol.Freq, rad)
		if err != nil {
			return nil, err
		}
		for i := range gd {
			gd[i] *= 1e3
		}
		r.GroupDelayMS = gd
	} else {
		r.GroupDelayMS = []float64{math.NaN()}
	}

	if sol.Xmax > 0 {
		r.ExcursionLimitedSPL = make([]float64, n)
		for i := range r.SPL {
			xpk := r.DisplacementMM[i] / 1e3
			r.ExcursionLimitedSPL[i] = r.SPL[i] + 20*math.Log10(sol.Xmax/xpk)
		}
	}

	r.mask(sol.Reliable)
	return r, nil
}

func level(p []complex128) []float64 {
	out := Power(p)
	for i, v := range out {
		out[i] = PowerToSPL(v)
	}
	return out
}

func maskComplex(in []complex128, ok []bool) []complex128 {
	out := make([]complex128, len(in))
	for i, v := range in {
		if ok[i] {
			out[i] = v
		} else {
			out[i] = cmplx.NaN()
		}
	}
	return out
}

// mask sets every real-valued observable to NaN where the network was
// unreliable.
func (r *Response) mask(ok []bool) {
	cols := [][]float64{
		r.ZMag, r.ZPhaseDeg, r.SPL, r.SPLPhaseDeg, r.SPLCone, r.SPLPort,
		r.DisplacementMM, r.DisplacementPhase, r.Velocity, r.GroupDelayMS,
		r.ExcursionLimitedSPL,
	}
	cols = append(cols, r.PortVolumeVelocity...)
	cols = append(cols, r.PortVelocity...)
	for i, good := range ok {
		if good {
			continue
		}
		r.Z[i] = cmplx.NaN()
		for _, c := range cols {
			if c != nil {
				c[i] = math.NaN()
			}
		}
	}
}
