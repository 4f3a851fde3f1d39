package network

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-speaker/speaker/driver"
	"github.com/cwbudde/algo-speaker/speaker/enclosure"
	"github.com/cwbudde/algo-speaker/speaker/env"
	"github.com/cwbudde/algo-speaker/speaker/validate"
)

// CancellationLimit is the relative magnitude below which a sum of
// impedances is treated as cancelled to zero.
const CancellationLimit = 1e-12

// Space is the solid angle the system radiates into.
type Space int

const (
	// HalfSpace is 2π radiation from a large baffle.
	HalfSpace Space = iota
	// FullSpace is 4π radiation.
	FullSpace
)

// SolidAngle returns 2π or 4π.
func (s Space) SolidAngle() float64 {
	if s == FullSpace {
		return 4 * math.Pi
	}
	return 2 * math.Pi
}

func (s Space) String() string {
	if s == FullSpace {
		return "full-space"
	}
	return "half-space"
}

// Config is the drive and observation setup.
type Config struct {
	Voltage  float64 // rms drive voltage, V
	Distance float64 // far-field observation distance, m
	Space    Space
}

// DefaultConfig returns 2.83 V at 1 m in half space.
func DefaultConfig() Config {
	return Config{Voltage: 2.83, Distance: 1, Space: HalfSpace}
}

// Validate checks the drive setup.
func (c Config) Validate() error {
	if err := validate.First(
		validate.Positive(validate.KindDrive, "Voltage", c.Voltage),
		validate.Positive(validate.KindDrive, "Distance", c.Distance),
	); err != nil {
		return err
	}
	if c.Space != HalfSpace && c.Space != FullSpace {
		return validate.Errorf(validate.KindDrive, "Space", "unknown radiation space %d", int(c.Space))
	}
	return nil
}

// Point is the network state at one frequency.
type Point struct {
	Freq         float64
	Ze           complex128 // blocked electrical impedance
	ZIn          complex128 // input impedance at the terminals
	ZLoop        complex128 // total acoustic loop impedance
	UCone        complex128 // cone volume velocity, m³/s
	UOutlets     []complex128
	Pressure     complex128 // far-field pressure of all radiators, Pa
	PressureCone complex128
	PressurePort complex128
	Reliable     bool
	OutOfModel   bool
}

// Solver evaluates a driver-enclosure system per frequency.
type Solver struct {
	load    enclosure.Load
	drv     *driver.Model
	env     env.Environment
	cfg     Config
	outlets []enclosure.Outlet
	kaLimit float64
}

// New returns a solver for load driven and observed as described by cfg.
func New(load enclosure.Load, e env.Environment, cfg Config) (*Solver, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	drv := load.Driver()
	return &Solver{
		load:    load,
		drv:     drv,
		env:     e,
		cfg:     cfg,
		outlets: load.Outlets(),
		kaLimit: drv.KaFrequency(1),
	}, nil
}

// Driver returns the effective driver of the load.
func (s *Solver) Driver() *driver.Model { return s.drv }

// Outlets returns the radiating ports of the load.
func (s *Solver) Outlets() []enclosure.Outlet { return s.outlets }

// Config returns the drive setup.
func (s *Solver) Config() Config { return s.cfg }

// KaLimit returns the frequency at which the cone reaches ka = 1. Results
// above it are flagged OutOfModel.
func (s *Solver) KaLimit() float64 { return s.kaLimit }

// Response evaluates the network at frequency f in Hz.
func (s *Solver) Response(f float64) (Point, error) {
	if !(f > 0) || math.IsInf(f, 0) {
		return Point{}, validate.Errorf(validate.KindGrid, "freq", "frequency must be finite and > 0: %g", f)
	}
	pt := Point{Freq: f, UOutlets: make([]complex128, len(s.outlets))}
	s.respond(&pt, pt.UOutlets)
	if err := checkFinite(&pt); err != nil {
		return Point{}, err
	}
	return pt, nil
}

func (s *Solver) respond(pt *Point, tr []complex128) {
	w := env.Omega(pt.Freq)
	bl, sd := s.drv.Bl(), s.drv.Sd()

	ze := s.drv.BlockedImpedance(w)
	zm := MechanicalToAcoustic(s.drv.MechanicalImpedance(w), sd)
	faces := s.load.Faces(w)
	zae := ElectricalToAcoustic(ze, bl, sd)
	zmech := zm + faces.Total()
	zloop := zae + zmech

	pt.Ze = ze
	pt.ZLoop = zloop
	pt.OutOfModel = pt.Freq > s.kaLimit
	pt.Reliable = !cancelled(zloop, zae, zm, faces.Front, faces.Back, faces.Air) &&
		!cancelled(zmech, zm, faces.Front, faces.Back, faces.Air)
	for _, o := range s.outlets {
		if zp := o.Port.Impedance(w); zp == 0 || cmplx.IsNaN(zp) || cmplx.IsInf(zp) {
			pt.Reliable = false
		}
	}

	u := SourcePressure(s.cfg.Voltage, ze, bl, sd) / zloop
	pt.UCone = u
	pt.ZIn = ze + AcousticToElectrical(zmech, bl, sd)

	s.load.Transfer(w, tr)
	var uport complex128
	for k := range tr {
		tr[k] *= u
		uport += tr[k]
	}

	k := complex(0, w*s.env.Density/(s.cfg.Space.SolidAngle()*s.cfg.Distance))
	if s.load.ConeRadiates() {
		pt.PressureCone = k * u
	}
	pt.PressurePort = k * uport
	pt.Pressure = pt.PressureCone + pt.PressurePort
}

// cancelled reports whether sum is zero, non-finite or below
// CancellationLimit of the magnitudes of its parts.
func cancelled(sum complex128, parts ...complex128) bool {
	if sum == 0 || cmplx.IsNaN(sum) || cmplx.IsInf(sum) {
		return true
	}
	var scale float64
	for _, p := range parts {
		scale += cmplx.Abs(p)
	}
	return cmplx.Abs(sum) < CancellationLimit*scale
}

// checkFinite rejects non-finite results at a frequency the network
// considered well conditioned.
func checkFinite(pt *Point) error {
	if !pt.Reliable {
		return nil
	}
	vals := append([]complex128{pt.Ze, pt.ZIn, pt.UCone, pt.Pressure}, pt.UOutlets...)
	for _, v := range vals {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return fmt.Errorf("network: non-finite response at %g Hz: %w", pt.Freq, validate.ErrInternal)
		}
	}
	return nil
}
