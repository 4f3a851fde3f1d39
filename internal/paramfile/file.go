package paramfile

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-speaker/speaker/driver"
	"github.com/cwbudde/algo-speaker/speaker/enclosure"
	"github.com/cwbudde/algo-speaker/speaker/env"
	"github.com/cwbudde/algo-speaker/speaker/grid"
	"github.com/cwbudde/algo-speaker/speaker/network"
	"github.com/cwbudde/algo-speaker/speaker/sim"
)

// Grid defaults used when neither the file nor the command line sets them.
const (
	DefaultFMin   = 10.0
	DefaultFMax   = 1000.0
	DefaultPoints = 500
)

// File is a parsed simulation setup.
type File struct {
	Driver      driver.Parameters
	Enclosure   enclosure.Parameters
	Environment env.Environment
	Voltage     float64
	Distance    float64
	Space       network.Space

	// Zero means "not set".
	FMin   float64
	FMax   float64
	Points int
}

// Grid returns the logarithmic grid described by FMin, FMax and Points,
// falling back to the package defaults for unset values.
func (f *File) Grid() (grid.Grid, error) {
	lo, hi, n := f.FMin, f.FMax, f.Points
	if lo == 0 {
		lo = DefaultFMin
	}
	if hi == 0 {
		hi = DefaultFMax
	}
	if n == 0 {
		n = DefaultPoints
	}
	return grid.Log(lo, hi, n)
}

// Options returns the simulation options the file sets.
func (f *File) Options() []sim.Option {
	return []sim.Option{
		sim.WithEnvironment(f.Environment),
		sim.WithVoltage(f.Voltage),
		sim.WithDistance(f.Distance),
		sim.WithSpace(f.Space),
	}
}

// box collects the fields of every enclosure kind until the kind is known.
type box struct {
	vb, portDiameter, portArea, portLength, fp float64
	rleak, ql                                  float64
	vFront, vRear, fpFront, fpRear             float64
	dPortFront, dPortRear                      float64
	rleakFront, rleakRear                      float64
	unflanged                                  bool
	rearPhase                                  enclosure.PortPhase
}

var (
	sealed   = []enclosure.Kind{enclosure.KindSealed}
	vented   = []enclosure.Kind{enclosure.KindBassReflex}
	bandpass = []enclosure.Kind{enclosure.KindBandpassIsobaric}
	boxed    = []enclosure.Kind{enclosure.KindSealed, enclosure.KindBassReflex}
	ported   = []enclosure.Kind{enclosure.KindBassReflex, enclosure.KindBandpassIsobaric}
	anyBox   = []enclosure.Kind{enclosure.KindSealed, enclosure.KindBassReflex, enclosure.KindBandpassIsobaric}
)

var fileFloats = map[string]func(*File) *float64{
	"re":          func(f *File) *float64 { return &f.Driver.Re },
	"le":          func(f *File) *float64 { return &f.Driver.Le },
	"red":         func(f *File) *float64 { return &f.Driver.Red },
	"bl":          func(f *File) *float64 { return &f.Driver.Bl },
	"sd":          func(f *File) *float64 { return &f.Driver.Sd },
	"xmax":        func(f *File) *float64 { return &f.Driver.Xmax },
	"fs":          func(f *File) *float64 { return &f.Driver.Fs },
	"qts":         func(f *File) *float64 { return &f.Driver.Qts },
	"qes":         func(f *File) *float64 { return &f.Driver.Qes },
	"qms":         func(f *File) *float64 { return &f.Driver.Qms },
	"vas":         func(f *File) *float64 { return &f.Driver.Vas },
	"cms":         func(f *File) *float64 { return &f.Driver.Cms },
	"mms":         func(f *File) *float64 { return &f.Driver.Mms },
	"density":     func(f *File) *float64 { return &f.Environment.Density },
	"sound_speed": func(f *File) *float64 { return &f.Environment.SoundSpeed },
	"viscosity":   func(f *File) *float64 { return &f.Environment.Viscosity },
	"voltage":     func(f *File) *float64 { return &f.Voltage },
	"distance":    func(f *File) *float64 { return &f.Distance },
	"fmin":        func(f *File) *float64 { return &f.FMin },
	"fmax":        func(f *File) *float64 { return &f.FMax },
}

var boxFloats = map[string]struct {
	kinds []enclosure.Kind
	field func(*box) *float64
}{
	"vb":            {boxed, func(b *box) *float64 { return &b.vb }},
	"port_diameter": {vented, func(b *box) *float64 { return &b.portDiameter }},
	"port_area":     {vented, func(b *box) *float64 { return &b.portArea }},
	"port_length":   {vented, func(b *box) *float64 { return &b.portLength }},
	"fp":            {vented, func(b *box) *float64 { return &b.fp }},
	"rleak":         {boxed, func(b *box) *float64 { return &b.rleak }},
	"ql":            {anyBox, func(b *box) *float64 { return &b.ql }},
	"v_front":       {bandpass, func(b *box) *float64 { return &b.vFront }},
	"v_rear":        {bandpass, func(b *box) *float64 { return &b.vRear }},
	"fp_front":      {bandpass, func(b *box) *float64 { return &b.fpFront }},
	"fp_rear":       {bandpass, func(b *box) *float64 { return &b.fpRear }},
	"d_port_front":  {bandpass, func(b *box) *float64 { return &b.dPortFront }},
	"d_port_rear":   {bandpass, func(b *box) *float64 { return &b.dPortRear }},
	"rleak_front":   {bandpass, func(b *box) *float64 { return &b.rleakFront }},
	"rleak_rear":    {bandpass, func(b *box) *float64 { return &b.rleakRear }},
}

var aliases = map[string]string{
	"type":     "enclosure",
	"kind":     "enclosure",
	"c":        "sound_speed",
	"rho":      "density",
	"n_points": "points",
}

var sections = []string{"driver.", "enclosure.", "environment.", "env.", "drive.", "grid.", "simulation."}

// canonical lower-cases a key, strips its section and resolves aliases.
func canonical(key string) string {
	k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	for _, s := range sections {
		if rest, ok := strings.CutPrefix(k, s); ok {
			k = rest
			break
		}
	}
	if a, ok := aliases[k]; ok {
		return a
	}
	return k
}

type builder struct {
	f       File
	kind    enclosure.Kind
	hasKind bool
	box     box
	boxKeys []entry
	seen    map[string]int
}

func build(entries []entry) (*File, error) {
	cfg := sim.DefaultConfig()
	b := &builder{
		f: File{
			Environment: cfg.Environment,
			Voltage:     cfg.Voltage,
			Distance:    cfg.Distance,
			Space:       cfg.Space,
		},
		seen: make(map[string]int),
	}
	for _, e := range entries {
		e.key = canonical(e.key)
		if prev, dup := b.seen[e.key]; dup {
			return nil, fmt.Errorf("%w: line %d: %s already set on line %d", ErrSyntax, e.line, e.key, prev)
		}
		b.seen[e.key] = e.line
		if err := b.set(e); err != nil {
			return nil, err
		}
	}
	return b.finish()
}

func (b *builder) set(e entry) error {
	if field, ok := fileFloats[e.key]; ok {
		v, err := parseFloat(e)
		if err != nil {
			return err
		}
		*field(&b.f) = v
		return nil
	}
	if bf, ok := boxFloats[e.key]; ok {
		v, err := parseFloat(e)
		if err != nil {
			return err
		}
		*bf.field(&b.box) = v
		b.boxKeys = append(b.boxKeys, e)
		return nil
	}

	var err error
	switch e.key {
	case "points":
		b.f.Points, err = parseInt(e)
		return err
	case "unflanged":
		b.boxKeys = append(b.boxKeys, e)
		b.box.unflanged, err = parseBool(e)
		return err
	case "enclosure":
		b.kind, err = ParseKind(e.value)
		b.hasKind = true
	case "space":
		b.f.Space, err = ParseSpace(e.value)
	case "rear_phase":
		b.boxKeys = append(b.boxKeys, e)
		b.box.rearPhase, err = ParsePortPhase(e.value)
	default:
		return fmt.Errorf("%w: line %d: unknown key %q", ErrSyntax, e.line, e.key)
	}
	if err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrSyntax, e.line, err)
	}
	return nil
}

func (b *builder) finish() (*File, error) {
	if !b.hasKind {
		if len(b.boxKeys) > 0 {
			e := b.boxKeys[0]
			return nil, fmt.Errorf("%w: line %d: %s given without an enclosure type", ErrSyntax, e.line, e.key)
		}
		b.kind = enclosure.KindInfiniteBaffle
	}
	for _, e := range b.boxKeys {
		if !applies(e.key, b.kind) {
			return nil, fmt.Errorf("%w: line %d: %s does not apply to a %s enclosure", ErrSyntax, e.line, e.key, b.kind)
		}
	}

	x := b.box
	switch b.kind {
	case enclosure.KindInfiniteBaffle:
		b.f.Enclosure = enclosure.InfiniteBaffle{}
	case enclosure.KindSealed:
		b.f.Enclosure = enclosure.Sealed{Vb: x.vb, RLeak: x.rleak, QL: x.ql}
	case enclosure.KindBassReflex:
		b.f.Enclosure = enclosure.BassReflex{
			Vb:           x.vb,
			PortDiameter: x.portDiameter,
			PortArea:     x.portArea,
			PortLength:   x.portLength,
			Fp:           x.fp,
			RLeak:        x.rleak,
			QL:           x.ql,
			Unflanged:    x.unflanged,
		}
	case enclosure.KindBandpassIsobaric:
		b.f.Enclosure = enclosure.BandpassIsobaric{
			VFront:     x.vFront,
			VRear:      x.vRear,
			FpFront:    x.fpFront,
			FpRear:     x.fpRear,
			DPortFront: x.dPortFront,
			DPortRear:  x.dPortRear,
			RLeakFront: x.rleakFront,
			RLeakRear:  x.rleakRear,
			QL:         x.ql,
			RearPhase:  x.rearPhase,
			Unflanged:  x.unflanged,
		}
	}
	return &b.f, nil
}

func applies(key string, k enclosure.Kind) bool {
	var kinds []enclosure.Kind
	switch key {
	case "unflanged":
		kinds = ported
	case "rear_phase":
		kinds = bandpass
	default:
		kinds = boxFloats[key].kinds
	}
	for _, kk := range kinds {
		if kk == k {
			return true
		}
	}
	return false
}

// ParseKind maps an enclosure name to its Kind. Besides the canonical names
// it accepts "ib", "closed", "vented", "br" and "bandpass".
func ParseKind(s string) (enclosure.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "infinite-baffle", "infinite_baffle", "ib", "baffle":
		return enclosure.KindInfiniteBaffle, nil
	case "sealed", "closed":
		return enclosure.KindSealed, nil
	case "bass-reflex", "bass_reflex", "vented", "br", "ported":
		return enclosure.KindBassReflex, nil
	case "bandpass-isobaric", "bandpass_isobaric", "bandpass":
		return enclosure.KindBandpassIsobaric, nil
	}
	return 0, fmt.Errorf("unknown enclosure %q", s)
}

// ParseSpace accepts "half", "full", "2pi", "4pi" and the String() names.
func ParseSpace(s string) (network.Space, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "half", "half-space", "2pi":
		return network.HalfSpace, nil
	case "full", "full-space", "4pi":
		return network.FullSpace, nil
	}
	return 0, fmt.Errorf("unknown radiation space %q", s)
}

// ParsePortPhase accepts "in-phase" and "anti-phase".
func ParsePortPhase(s string) (enclosure.PortPhase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in-phase", "in", "same":
		return enclosure.InPhase, nil
	case "anti-phase", "anti", "opposite":
		return enclosure.AntiPhase, nil
	}
	return 0, fmt.Errorf("unknown port phase %q", s)
}
