package sim

import (
	"fmt"

	"github.com/cwbudde/algo-speaker/speaker/driver"
	"github.com/cwbudde/algo-speaker/speaker/enclosure"
	"github.com/cwbudde/algo-speaker/speaker/grid"
	"github.com/cwbudde/algo-speaker/speaker/network"
	"github.com/cwbudde/algo-speaker/speaker/observe"
)

// Simulate derives the driver d, loads it with the enclosure e and evaluates
// the system on g.
//
// Validation failures match validate.ErrInvalidParameters (driver
// derivation failures additionally validate.ErrInvalidDriverParameters).
// Simulate performs no I/O and keeps no state between calls.
func Simulate(d driver.Parameters, e enclosure.Parameters, g grid.Grid, opts ...Option) (*Results, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Environment.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.drive().Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	model, driverWarnings, err := driver.Derive(d, cfg.Environment)
	if err != nil {
		return nil, err
	}
	load, err := enclosure.New(e, model, cfg.Environment)
	if err != nil {
		return nil, err
	}
	solver, err := network.New(load, cfg.Environment, cfg.drive())
	if err != nil {
		return nil, err
	}

	sol, err := solver.Evaluate(g)
	if err != nil {
		return nil, err
	}
	resp, err := observe.Derive(sol)
	if err != nil {
		return nil, fmt.Errorf("sim: deriving observables: %w", err)
	}

	res := newResults(resp)
	res.Reliable = sol.Reliable
	res.OutOfModel = sol.OutOfModel
	res.Driver = summarizeDriver(model, load)
	res.Enclosure = summarizeEnclosure(load)

	for _, w := range driverWarnings {
		res.Warnings = append(res.Warnings, NumericalWarning{Kind: WarningKind(w.Kind), Message: w.Message})
	}
	res.Warnings = append(res.Warnings, gridWarnings(sol, solver.KaLimit())...)

	if cfg.Step {
		step, err := observe.Step(solver, g.Max(), len(g), cfg.StepMinSize)
		if err != nil {
			return nil, fmt.Errorf("sim: step response: %w", err)
		}
		m, err := observe.AnalyzeStep(step)
		if err != nil {
			return nil, fmt.Errorf("sim: step analysis: %w", err)
		}
		res.Step = &StepResponse{TimeMS: step.TimeMS, X: step.X, SampleRate: step.SampleRate}
		res.StepMetrics = &StepMetrics{
			PeakTime:         m.PeakTime,
			RiseTime:         m.RiseTime,
			Undershoot:       m.Undershoot,
			ZeroCrossings:    m.ZeroCrossings,
			RingingFrequency: m.RingingFrequency,
		}
	}
	return res, nil
}

func summarizeDriver(m *driver.Model, load enclosure.Load) DriverSummary {
	eff := load.Driver()
	return DriverSummary{
		ThieleSmall: m.ThieleSmall(),
		Radius:      m.Radius(),
		Efficiency:  m.Efficiency(),
		Sensitivity: m.Sensitivity(),
		KaLimit:     eff.KaFrequency(1),
		Isobaric:    eff != m,
	}
}

func summarizeEnclosure(load enclosure.Load) EnclosureSummary {
	s := EnclosureSummary{Kind: load.Kind().String()}
	for _, o := range load.Outlets() {
		s.Outlets = append(s.Outlets, OutletSummary{
			Name:     o.Name,
			Diameter: 2 * o.Port.Radius(),
			Length:   o.Port.Length(),
			Tuning:   o.Tuning,
		})
	}
	return s
}

func gridWarnings(sol *network.Solution, kaLimit float64) []NumericalWarning {
	var unreliable, outside int
	for i := range sol.Freq {
		if !sol.Reliable[i] {
			unreliable++
		}
		if sol.OutOfModel[i] {
			outside++
		}
	}
	var out []NumericalWarning
	if unreliable > 0 {
		out = append(out, NumericalWarning{
			Kind:    WarnUnreliable,
			Message: fmt.Sprintf("%d of %d frequencies are numerically unreliable and reported as NaN", unreliable, len(sol.Freq)),
		})
	}
	if outside > 0 {
		out = append(out, NumericalWarning{
			Kind:    WarnOutOfModel,
			Message: fmt.Sprintf("%d of %d frequencies lie above ka = 1 (%.0f Hz) where the piston model is approximate", outside, len(sol.Freq), kaLimit),
		})
	}
	return out
}
