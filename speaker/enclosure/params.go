package enclosure

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-speaker/speaker/validate"
)

// DefaultQL is the leakage quality factor used when no explicit leak
// resistance is given.
const DefaultQL = 7.0

// Kind identifies an enclosure topology.
type Kind int

// Supported topologies.
const (
	KindInfiniteBaffle Kind = iota
	KindSealed
	KindBassReflex
	KindBandpassIsobaric
)

func (k Kind) String() string {
	switch k {
	case KindInfiniteBaffle:
		return "infinite-baffle"
	case KindSealed:
		return "sealed"
	case KindBassReflex:
		return "bass-reflex"
	case KindBandpassIsobaric:
		return "bandpass-isobaric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// PortPhase selects the polarity with which the rear chamber port of a
// bandpass enclosure adds to the far field.
type PortPhase int

const (
	// InPhase mounts both ports on the same face of the cabinet. The rear
	// port flow is then subtracted so that, at the rear tuning, it adds
	// constructively with the front port.
	InPhase PortPhase = iota
	// AntiPhase mounts the rear port on the opposite face.
	AntiPhase
)

func (p PortPhase) String() string {
	if p == AntiPhase {
		return "anti-phase"
	}
	return "in-phase"
}

// Parameters is one of InfiniteBaffle, Sealed, BassReflex or
// BandpassIsobaric.
type Parameters interface {
	Kind() Kind
	check() error
}

// InfiniteBaffle mounts the driver in an unbounded wall; both faces radiate
// into half space.
type InfiniteBaffle struct{}

// Sealed is a closed box of net volume Vb.
//
// RLeak is the acoustic leak resistance in Pa·s/m³. Zero selects the default
// QL/(ω_c·C_ab) and +Inf removes the leak entirely. QL defaults to DefaultQL.
type Sealed struct {
	Vb    float64
	RLeak float64
	QL    float64
}

// BassReflex is a vented box with a single circular port.
//
// The port cross-section is given by PortDiameter or PortArea, its length by
// PortLength or by the tuning frequency Fp. Unflanged selects the free-pipe
// end correction and radiation for the outer mouth.
type BassReflex struct {
	Vb           float64
	PortDiameter float64
	PortArea     float64
	PortLength   float64
	Fp           float64
	RLeak        float64
	QL           float64
	Unflanged    bool
}

// BandpassIsobaric is a 6th-order bandpass with an isobaric driver pair on
// the partition. Both chambers are vented; the cone does not radiate.
type BandpassIsobaric struct {
	VFront     float64
	VRear      float64
	FpFront    float64
	FpRear     float64
	DPortFront float64
	DPortRear  float64
	RLeakFront float64
	RLeakRear  float64
	QL         float64
	RearPhase  PortPhase
	Unflanged  bool
}

// Kind implements Parameters.
func (InfiniteBaffle) Kind() Kind { return KindInfiniteBaffle }

// Kind implements Parameters.
func (Sealed) Kind() Kind { return KindSealed }

// Kind implements Parameters.
func (BassReflex) Kind() Kind { return KindBassReflex }

// Kind implements Parameters.
func (BandpassIsobaric) Kind() Kind { return KindBandpassIsobaric }

func (InfiniteBaffle) check() error { return nil }

func (s Sealed) check() error {
	k := validate.KindEnclosure
	return validate.First(
		validate.Positive(k, "Vb", s.Vb),
		leakCheck("RLeak", s.RLeak),
		validate.Optional(k, "QL", s.QL),
	)
}

func (b BassReflex) check() error {
	k := validate.KindEnclosure
	if err := validate.First(
		validate.Positive(k, "Vb", b.Vb),
		validate.Optional(k, "PortDiameter", b.PortDiameter),
		validate.Optional(k, "PortArea", b.PortArea),
		validate.Optional(k, "PortLength", b.PortLength),
		validate.Optional(k, "Fp", b.Fp),
		leakCheck("RLeak", b.RLeak),
		validate.Optional(k, "QL", b.QL),
	); err != nil {
		return err
	}
	switch {
	case b.PortDiameter == 0 && b.PortArea == 0:
		return validate.Errorf(k, "PortDiameter", "one of PortDiameter or PortArea is required")
	case b.PortDiameter > 0 && b.PortArea > 0:
		return validate.Errorf(k, "PortArea", "give either PortDiameter or PortArea, not both")
	case b.PortLength == 0 && b.Fp == 0:
		return validate.Errorf(k, "Fp", "one of Fp or PortLength is required")
	case b.PortLength > 0 && b.Fp > 0:
		return validate.Errorf(k, "PortLength", "give either Fp or PortLength, not both")
	}
	return nil
}

func (b BandpassIsobaric) check() error {
	k := validate.KindEnclosure
	if err := validate.First(
		validate.Positive(k, "VFront", b.VFront),
		validate.Positive(k, "VRear", b.VRear),
		validate.Positive(k, "FpFront", b.FpFront),
		validate.Positive(k, "FpRear", b.FpRear),
		validate.Positive(k, "DPortFront", b.DPortFront),
		validate.Positive(k, "DPortRear", b.DPortRear),
		leakCheck("RLeakFront", b.RLeakFront),
		leakCheck("RLeakRear", b.RLeakRear),
		validate.Optional(k, "QL", b.QL),
	); err != nil {
		return err
	}
	if b.RearPhase != InPhase && b.RearPhase != AntiPhase {
		return validate.Errorf(k, "RearPhase", "unknown port phase %d", int(b.RearPhase))
	}
	return nil
}

// leakCheck accepts zero (default leak), a positive value or +Inf.
func leakCheck(field string, r float64) error {
	if r == 0 {
		return nil
	}
	return validate.PositiveOrInf(validate.KindEnclosure, field, r)
}

// leakAdmittance returns 1/R for an explicit leak, the QL-derived default
// when r is zero, and 0 for an infinite resistance.
func leakAdmittance(r, ql, fc, cab float64) float64 {
	switch {
	case math.IsInf(r, 1):
		return 0
	case r > 0:
		return 1 / r
	}
	if ql == 0 {
		ql = DefaultQL
	}
	return 2 * math.Pi * fc * cab / ql
}
