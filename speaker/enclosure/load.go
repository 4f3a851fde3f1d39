package enclosure

import (
	"math"

	"github.com/cwbudde/algo-speaker/speaker/driver"
	"github.com/cwbudde/algo-speaker/speaker/env"
	"github.com/cwbudde/algo-speaker/speaker/radiation"
	"github.com/cwbudde/algo-speaker/speaker/validate"
)

// Faces holds the acoustic impedances seen by the cone at one frequency.
//
// Front and Back are the loads on the two faces. Air restores the low-ka
// radiation mass that Mms already includes for every face that does not
// radiate into free air.
type Faces struct {
	Front complex128
	Back  complex128
	Air   complex128
}

// Total returns Front + Back + Air.
func (f Faces) Total() complex128 { return f.Front + f.Back + f.Air }

// Outlet is a port that radiates into the far field.
type Outlet struct {
	Name   string
	Port   radiation.Port
	Tuning float64 // Helmholtz frequency of port and chamber, Hz
}

// Load is a driver coupled to an enclosure.
type Load interface {
	Kind() Kind
	// Driver returns the effective driver, which is the isobaric equivalent
	// for bandpass enclosures.
	Driver() *driver.Model
	// Faces returns the acoustic loads at angular frequency w.
	Faces(w float64) Faces
	// Outlets lists the radiating ports in a fixed order.
	Outlets() []Outlet
	// Transfer writes U_outlet/U_cone for every outlet into dst, which must
	// have len(Outlets()) elements.
	Transfer(w float64, dst []complex128)
	// ConeRadiates reports whether the cone's front face reaches the far
	// field.
	ConeRadiates() bool
}

// New builds the acoustic load of p around the derived driver m.
func New(p Parameters, m *driver.Model, e env.Environment) (Load, error) {
	if p == nil {
		return nil, validate.Errorf(validate.KindEnclosure, "", "no enclosure given")
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	rad := radiation.NewBaffled(m.Radius(), e)

	switch p := p.(type) {
	case InfiniteBaffle:
		return &infiniteBaffle{drv: m, rad: rad}, nil
	case Sealed:
		return newSealed(p, m, rad, e), nil
	case BassReflex:
		return newBassReflex(p, m, rad, e)
	case BandpassIsobaric:
		return newBandpass(p, m, e)
	}
	return nil, validate.Errorf(validate.KindEnclosure, "", "unsupported enclosure %T", p)
}

type infiniteBaffle struct {
	drv *driver.Model
	rad radiation.Baffled
}

func (l *infiniteBaffle) Kind() Kind                     { return KindInfiniteBaffle }
func (l *infiniteBaffle) Driver() *driver.Model          { return l.drv }
func (l *infiniteBaffle) Outlets() []Outlet              { return nil }
func (l *infiniteBaffle) Transfer(float64, []complex128) {}
func (l *infiniteBaffle) ConeRadiates() bool             { return true }

func (l *infiniteBaffle) Faces(w float64) Faces {
	z := l.rad.Impedance(w)
	return Faces{Front: z, Back: z}
}

// chamber is a closed volume with an optional leak and optional port.
type chamber struct {
	c      float64 // acoustic compliance Vb/(ρ₀c²)
	yLeak  float64
	port   *radiation.Port
	tuning float64
}

// impedance returns the chamber impedance (compliance ∥ leak ∥ port) and the
// port impedance. zp is zero when the chamber is closed.
func (c chamber) impedance(w float64) (z, zp complex128) {
	y := complex(c.yLeak, w*c.c)
	if c.port != nil {
		zp = c.port.Impedance(w)
		y += 1 / zp
	}
	return 1 / y, zp
}

// ClosedBoxResonance returns f_c = Fs·√(1 + Vas/Vb).
func ClosedBoxResonance(fs, vas, vb float64) float64 {
	return fs * math.Sqrt(1+vas/vb)
}

type sealed struct {
	drv *driver.Model
	rad radiation.Baffled
	box chamber
}

func newSealed(p Sealed, m *driver.Model, rad radiation.Baffled, e env.Environment) *sealed {
	cab := p.Vb / e.Stiffness()
	fc := ClosedBoxResonance(m.Fs(), m.Vas(), p.Vb)
	return &sealed{
		drv: m,
		rad: rad,
		box: chamber{c: cab, yLeak: leakAdmittance(p.RLeak, p.QL, fc, cab), tuning: fc},
	}
}

func (l *sealed) Kind() Kind                     { return KindSealed }
func (l *sealed) Driver() *driver.Model          { return l.drv }
func (l *sealed) Outlets() []Outlet              { return nil }
func (l *sealed) Transfer(float64, []complex128) {}
func (l *sealed) ConeRadiates() bool             { return true }

func (l *sealed) Faces(w float64) Faces {
	back, _ := l.box.impedance(w)
	return Faces{
		Front: l.rad.Impedance(w),
		Back:  back,
		Air:   complex(0, w*l.rad.Mass()),
	}
}

type bassReflex struct {
	drv *driver.Model
	rad radiation.Baffled
	box chamber
}

func newBassReflex(p BassReflex, m *driver.Model, rad radiation.Baffled, e env.Environment) (*bassReflex, error) {
	a := p.PortDiameter / 2
	if p.PortArea > 0 {
		a = math.Sqrt(p.PortArea / math.Pi)
	}
	flanged := !p.Unflanged

	length, fp := p.PortLength, p.Fp
	if length == 0 {
		length = radiation.LengthForTuning(a, p.Vb, fp, flanged, e)
		if length <= 0 {
			return nil, validate.Errorf(validate.KindEnclosure, "PortDiameter",
				"port of diameter %.4g m cannot be tuned to %.4g Hz in %.4g m³ (length %.4g m)", 2*a, fp, p.Vb, length)
		}
	} else {
		fp = radiation.TuningForLength(a, p.Vb, length, flanged, e)
	}

	port := radiation.NewPort(a, length, flanged, e)
	cab := p.Vb / e.Stiffness()
	return &bassReflex{
		drv: m,
		rad: rad,
		box: chamber{c: cab, yLeak: leakAdmittance(p.RLeak, p.QL, fp, cab), port: &port, tuning: fp},
	}, nil
}

func (l *bassReflex) Kind() Kind            { return KindBassReflex }
func (l *bassReflex) Driver() *driver.Model { return l.drv }
func (l *bassReflex) ConeRadiates() bool    { return true }

func (l *bassReflex) Outlets() []Outlet {
	return []Outlet{{Name: "port", Port: *l.box.port, Tuning: l.box.tuning}}
}

func (l *bassReflex) Faces(w float64) Faces {
	back, _ := l.box.impedance(w)
	return Faces{
		Front: l.rad.Impedance(w),
		Back:  back,
		Air:   complex(0, w*l.rad.Mass()),
	}
}

// Transfer writes U_port/U_cone = −Z_box/Z_port. The port expels air when the
// cone moves into the box.
func (l *bassReflex) Transfer(w float64, dst []complex128) {
	zb, zp := l.box.impedance(w)
	dst[0] = -zb / zp
}

type bandpass struct {
	drv   *driver.Model
	rad   radiation.Baffled
	front chamber
	rear  chamber
	sign  complex128
}

func newBandpass(p BandpassIsobaric, m *driver.Model, e env.Environment) (*bandpass, error) {
	pair := m.Isobaric()
	flanged := !p.Unflanged

	mk := func(field string, v, fp, d, rleak float64) (chamber, error) {
		a := d / 2
		length := radiation.LengthForTuning(a, v, fp, flanged, e)
		if length <= 0 {
			return chamber{}, validate.Errorf(validate.KindEnclosure, field,
				"port of diameter %.4g m cannot be tuned to %.4g Hz in %.4g m³ (length %.4g m)", d, fp, v, length)
		}
		port := radiation.NewPort(a, length, flanged, e)
		c := v / e.Stiffness()
		return chamber{c: c, yLeak: leakAdmittance(rleak, p.QL, fp, c), port: &port, tuning: fp}, nil
	}

	front, err := mk("DPortFront", p.VFront, p.FpFront, p.DPortFront, p.RLeakFront)
	if err != nil {
		return nil, err
	}
	rear, err := mk("DPortRear", p.VRear, p.FpRear, p.DPortRear, p.RLeakRear)
	if err != nil {
		return nil, err
	}

	sign := complex(1, 0)
	if p.RearPhase == AntiPhase {
		sign = -1
	}
	return &bandpass{
		drv:   pair,
		rad:   radiation.NewBaffled(pair.Radius(), e),
		front: front,
		rear:  rear,
		sign:  sign,
	}, nil
}

func (l *bandpass) Kind() Kind            { return KindBandpassIsobaric }
func (l *bandpass) Driver() *driver.Model { return l.drv }
func (l *bandpass) ConeRadiates() bool    { return false }

func (l *bandpass) Outlets() []Outlet {
	return []Outlet{
		{Name: "front port", Port: *l.front.port, Tuning: l.front.tuning},
		{Name: "rear port", Port: *l.rear.port, Tuning: l.rear.tuning},
	}
}

// Faces returns both chamber impedances. Both outer faces of the pair are
// enclosed, so both receive the interior air mass.
func (l *bandpass) Faces(w float64) Faces {
	zf, _ := l.front.impedance(w)
	zr, _ := l.rear.impedance(w)
	return Faces{
		Front: zf,
		Back:  zr,
		Air:   complex(0, 2*w*l.rad.Mass()),
	}
}

// Transfer writes U_pf/U = Z_f/Z_pf and U_pr/U = −s·Z_r/Z_pr.
func (l *bandpass) Transfer(w float64, dst []complex128) {
	zf, zpf := l.front.impedance(w)
	zr, zpr := l.rear.impedance(w)
	dst[0] = zf / zpf
	dst[1] = -l.sign * zr / zpr
}
