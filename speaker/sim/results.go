package sim

import (
	"github.com/cwbudde/algo-speaker/speaker/driver"
	"github.com/cwbudde/algo-speaker/speaker/observe"
)

// WarningKind classifies a non-fatal condition of a simulation.
type WarningKind string

// Warnings attached to Results.
const (
	WarnQmsRefit   WarningKind = WarningKind(driver.WarnQmsRefit)
	WarnQesFromBl  WarningKind = WarningKind(driver.WarnQesFromBl)
	WarnUnreliable WarningKind = "unreliable"
	WarnOutOfModel WarningKind = "out-of-model"
)

// NumericalWarning reports an adjusted parameter or a numerically doubtful
// part of the result.
type NumericalWarning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// DriverSummary is the derived driver as simulated.
type DriverSummary struct {
	driver.ThieleSmall
	Radius      float64 `json:"radius"`
	Efficiency  float64 `json:"efficiency"`
	Sensitivity float64 `json:"sensitivity_dB"`
	KaLimit     float64 `json:"ka_limit_hz"`
	Isobaric    bool    `json:"isobaric"`
}

// OutletSummary describes a radiating port.
type OutletSummary struct {
	Name     string  `json:"name"`
	Diameter float64 `json:"diameter"`
	Length   float64 `json:"length"`
	Tuning   float64 `json:"tuning_hz"`
}

// EnclosureSummary describes the simulated enclosure.
type EnclosureSummary struct {
	Kind    string          `json:"kind"`
	Outlets []OutletSummary `json:"outlets,omitempty"`
}

// StepResponse is the normalised pressure step response.
type StepResponse struct {
	TimeMS     Series  `json:"t_ms"`
	X          Series  `json:"x_norm"`
	SampleRate float64 `json:"sample_rate_hz"`
}

// StepMetrics summarises the step response. Times are in milliseconds.
type StepMetrics struct {
	PeakTime         float64 `json:"peak_time_ms"`
	RiseTime         float64 `json:"rise_time_ms"`
	Undershoot       float64 `json:"undershoot"`
	ZeroCrossings    Series  `json:"zero_crossings_ms"`
	RingingFrequency float64 `json:"ringing_hz"`
}

// Results is the outcome of Simulate. It is built once and not modified
// afterwards; the JSON field names are part of the output contract.
type Results struct {
	Freq                Series             `json:"freq"`
	Z                   ComplexSeries      `json:"Z"`
	ZMag                Series             `json:"Z_mag"`
	ZPhaseDeg           Series             `json:"Z_phase_deg"`
	SPL                 Series             `json:"SPL"`
	SPLPhaseDeg         Series             `json:"SPL_phase_deg"`
	SPLCone             Series             `json:"SPL_cone,omitempty"`
	SPLPort             Series             `json:"SPL_port,omitempty"`
	DisplacementMM      Series             `json:"displacement_mm"`
	DisplacementPhase   Series             `json:"displacement_phase_deg"`
	Velocity            Series             `json:"velocity"`
	GroupDelayMS        Series             `json:"group_delay_ms"`
	PortVolumeVelocity  []Series           `json:"port_volume_velocity,omitempty"`
	PortVelocity        []Series           `json:"port_velocity,omitempty"`
	ExcursionLimitedSPL Series             `json:"excursion_limited_SPL,omitempty"`
	Reliable            []bool             `json:"reliable"`
	OutOfModel          []bool             `json:"out_of_model"`
	Step                *StepResponse      `json:"step_response,omitempty"`
	StepMetrics         *StepMetrics       `json:"step_metrics,omitempty"`
	Warnings            []NumericalWarning `json:"warnings"`
	Driver              DriverSummary      `json:"driver"`
	Enclosure           EnclosureSummary   `json:"enclosure"`
}

func newResults(r *observe.Response) *Results {
	res := &Results{
		Freq:                r.Freq,
		Z:                   r.Z,
		ZMag:                r.ZMag,
		ZPhaseDeg:           r.ZPhaseDeg,
		SPL:                 r.SPL,
		SPLPhaseDeg:         r.SPLPhaseDeg,
		SPLCone:             r.SPLCone,
		SPLPort:             r.SPLPort,
		DisplacementMM:      r.DisplacementMM,
		DisplacementPhase:   r.DisplacementPhase,
		Velocity:            r.Velocity,
		GroupDelayMS:        r.GroupDelayMS,
		ExcursionLimitedSPL: r.ExcursionLimitedSPL,
		Warnings:            []NumericalWarning{},
	}
	for _, s := range r.PortVolumeVelocity {
		res.PortVolumeVelocity = append(res.PortVolumeVelocity, s)
	}
	for _, s := range r.PortVelocity {
		res.PortVelocity = append(res.PortVelocity, s)
	}
	return res
}
