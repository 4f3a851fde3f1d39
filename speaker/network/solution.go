package network

import (
	"github.com/cwbudde/algo-speaker/speaker/enclosure"
	"github.com/cwbudde/algo-speaker/speaker/validate"
)

// Solution holds the network state over a frequency grid. All slices share
// the length of Freq; UOutlets has one row per outlet.
type Solution struct {
	Freq         []float64
	Ze           []complex128
	ZIn          []complex128
	ZLoop        []complex128
	UCone        []complex128
	UOutlets     [][]complex128
	Pressure     []complex128
	PressureCone []complex128
	PressurePort []complex128
	Reliable     []bool
	OutOfModel   []bool

	Outlets      []enclosure.Outlet
	Sd           float64
	Xmax         float64
	Config       Config
	ConeRadiates bool
}

// Evaluate solves the network at every frequency of freqs, which must be
// positive, finite and strictly increasing.
func (s *Solver) Evaluate(freqs []float64) (*Solution, error) {
	if err := validate.Grid(freqs); err != nil {
		return nil, err
	}
	n := len(freqs)
	sol := &Solution{
		Freq:         append([]float64(nil), freqs...),
		Ze:           make([]complex128, n),
		ZIn:          make([]complex128, n),
		ZLoop:        make([]complex128, n),
		UCone:        make([]complex128, n),
		UOutlets:     make([][]complex128, len(s.outlets)),
		Pressure:     make([]complex128, n),
		PressureCone: make([]complex128, n),
		PressurePort: make([]complex128, n),
		Reliable:     make([]bool, n),
		OutOfModel:   make([]bool, n),
		Outlets:      s.outlets,
		Sd:           s.drv.Sd(),
		Xmax:         s.drv.Xmax(),
		Config:       s.cfg,
		ConeRadiates: s.load.ConeRadiates(),
	}
	for k := range sol.UOutlets {
		sol.UOutlets[k] = make([]complex128, n)
	}

	tr := make([]complex128, len(s.outlets))
	for i, f := range freqs {
		pt := Point{Freq: f, UOutlets: tr}
		s.respond(&pt, tr)
		if err := checkFinite(&pt); err != nil {
			return nil, err
		}
		sol.Ze[i] = pt.Ze
		sol.ZIn[i] = pt.ZIn
		sol.ZLoop[i] = pt.ZLoop
		sol.UCone[i] = pt.UCone
		sol.Pressure[i] = pt.Pressure
		sol.PressureCone[i] = pt.PressureCone
		sol.PressurePort[i] = pt.PressurePort
		sol.Reliable[i] = pt.Reliable
		sol.OutOfModel[i] = pt.OutOfModel
		for k, u := range tr {
			sol.UOutlets[k][i] = u
		}
	}
	return sol, nil
}

// Len returns the number of frequencies.
func (s *Solution) Len() int { return len(s.Freq) }
