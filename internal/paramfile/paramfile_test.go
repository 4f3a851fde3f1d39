package paramfile

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-speaker/speaker/driver"
	"github.com/cwbudde/algo-speaker/speaker/enclosure"
	"github.com/cwbudde/algo-speaker/speaker/network"
)

const ventedKV = `
# 15" woofer in a 30 l vented box
enclosure = bass-reflex
Re  = 5
Le  = 1.75e-3
Bl  = 19.2
Sd  = 0.088
Fs  = 40
Qts = 0.31
Qes = 0.33
Qms = 5

Vb = 0.030      # net volume
fp = 28.5
port-diameter = 0.12
rleak = inf
`

const ventedYAML = `
driver:
  Re: 5
  Le: 1.75e-3
  Bl: 19.2
  Sd: 0.088
  Fs: 40
  Qts: 0.31
  Qes: 0.33
  Qms: 5
enclosure:
  type: bass-reflex
  Vb: 0.030
  fp: 28.5
  port_diameter: 0.12
  rleak: .inf
`

var wantDriver = driver.Parameters{
	Re: 5, Le: 1.75e-3, Bl: 19.2, Sd: 0.088,
	Fs: 40, Qts: 0.31, Qes: 0.33, Qms: 5,
}

func TestParseKeyValue(t *testing.T) {
	f, err := Parse(strings.NewReader(ventedKV), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, wantDriver, f.Driver)
	br, ok := f.Enclosure.(enclosure.BassReflex)
	require.True(t, ok, "got %T", f.Enclosure)
	assert.Equal(t, 0.030, br.Vb)
	assert.Equal(t, 28.5, br.Fp)
	assert.Equal(t, 0.12, br.PortDiameter)
	assert.True(t, math.IsInf(br.RLeak, 1))

	assert.Equal(t, 2.83, f.Voltage)
	assert.Equal(t, network.HalfSpace, f.Space)
}

func TestParseYAMLMatchesKeyValue(t *testing.T) {
	kv, err := Parse(strings.NewReader(ventedKV), FormatKeyValue)
	require.NoError(t, err)
	y, err := Parse(strings.NewReader(ventedYAML), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, kv.Driver, y.Driver)
	assert.Equal(t, kv.Enclosure, y.Enclosure)
}

func TestParseBandpass(t *testing.T) {
	src := `
enclosure: bandpass
driver: {Re: 5, Bl: 19.2, Sd: 0.088, Fs: 40, Qts: 0.31, Qes: 0.33}
enclosure.v_front: 0.0175
enclosure.v_rear: 0.0312
enclosure.fp_front: 82
enclosure.fp_rear: 28.5
enclosure.d_port_front: 0.12
enclosure.d_port_rear: 0.12
enclosure.rear_phase: anti-phase
environment: {density: 1.18, c: 345}
drive: {voltage: 4, distance: 2, space: full}
grid: {fmin: 5, fmax: 500, points: 100}
`
	f, err := Parse(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)

	bp, ok := f.Enclosure.(enclosure.BandpassIsobaric)
	require.True(t, ok, "got %T", f.Enclosure)
	assert.Equal(t, 0.0312, bp.VRear)
	assert.Equal(t, 82.0, bp.FpFront)
	assert.Equal(t, enclosure.AntiPhase, bp.RearPhase)

	assert.Equal(t, 1.18, f.Environment.Density)
	assert.Equal(t, 345.0, f.Environment.SoundSpeed)
	assert.Positive(t, f.Environment.Viscosity)
	assert.Equal(t, 4.0, f.Voltage)
	assert.Equal(t, 2.0, f.Distance)
	assert.Equal(t, network.FullSpace, f.Space)

	g, err := f.Grid()
	require.NoError(t, err)
	assert.Len(t, g, 100)
	assert.InDelta(t, 5, g.Min(), 1e-9)
	assert.InDelta(t, 500, g.Max(), 1e-9)
	assert.Len(t, f.Options(), 4)
}

func TestDefaults(t *testing.T) {
	f, err := Parse(strings.NewReader("Re = 6\n"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, enclosure.InfiniteBaffle{}, f.Enclosure)

	g, err := f.Grid()
	require.NoError(t, err)
	assert.Len(t, g, DefaultPoints)
	assert.InDelta(t, DefaultFMin, g.Min(), 1e-9)
	assert.InDelta(t, DefaultFMax, g.Max(), 1e-9)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
	}{
		{"missing equals", "Re = 5\nBl 19.2\n", "line 2"},
		{"not a number", "Re = five\n", "not a number"},
		{"unknown key", "Re = 5\nwoofer = yes\n", `unknown key "woofer"`},
		{"duplicate", "Re = 5\nre = 6\n", "already set on line 1"},
		{"box without type", "Vb = 0.03\n", "without an enclosure type"},
		{"wrong kind", "enclosure = sealed\nfp = 30\n", "does not apply to a sealed enclosure"},
		{"unknown enclosure", "enclosure = horn\n", `unknown enclosure "horn"`},
		{"bad points", "points = 1.5\n", "not an integer"},
		{"yaml list", "driver: [1, 2]\n", "must be a scalar"},
		{"yaml nesting", "driver:\n  re:\n    value: 5\n", "nests too deep"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.src), FormatAuto)
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "woofer.yml")
	require.NoError(t, os.WriteFile(path, []byte(ventedYAML), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, wantDriver, f.Driver)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSyntax)
}
