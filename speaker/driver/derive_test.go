package driver

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-speaker/speaker/env"
	"github.com/cwbudde/algo-speaker/speaker/validate"
)

// woofer is a 15" low-Qts reference driver.
func woofer() Parameters {
	return Parameters{
		Re: 5, Le: 1.75e-3, Bl: 19.2, Sd: 0.088,
		Fs: 40, Qts: 0.31, Qes: 0.33, Qms: 5,
	}
}

func nearlyEqual(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}

func TestDeriveFromBlAndQes(t *testing.T) {
	m, warnings, err := Derive(woofer(), env.Default())
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("consistent parameters produced warnings: %v", warnings)
	}

	ts := m.ThieleSmall()
	w0 := 2 * math.Pi * ts.Fs
	wantMms := 19.2 * 19.2 * 0.33 / (5 * w0)
	if !nearlyEqual(ts.Mms, wantMms, 1e-12) {
		t.Fatalf("Mms=%g want=%g", ts.Mms, wantMms)
	}
	if !nearlyEqual(w0*w0, 1/(ts.Mms*ts.Cms), 1e-12) {
		t.Fatalf("ω₀² != 1/(Mms·Cms)")
	}
	if !nearlyEqual(ts.Rms, w0*ts.Mms/5, 1e-12) {
		t.Fatalf("Rms=%g want=%g", ts.Rms, w0*ts.Mms/5)
	}
	if !nearlyEqual(1/ts.Qts, 1/ts.Qms+1/ts.Qes, 1e-12) {
		t.Fatalf("Q triad inconsistent: %+v", ts)
	}
	if ts.Mmd >= ts.Mms || ts.Mmd <= 0 {
		t.Fatalf("Mmd=%g must be positive and below Mms=%g", ts.Mmd, ts.Mms)
	}
	wantVas := ts.Cms * env.Default().Stiffness() * 0.088 * 0.088
	if !nearlyEqual(ts.Vas, wantVas, 1e-12) {
		t.Fatalf("Vas=%g want=%g", ts.Vas, wantVas)
	}
}

func TestDeriveMassSources(t *testing.T) {
	e := env.Default()
	ref, _, err := Derive(woofer(), e)
	if err != nil {
		t.Fatalf("reference: %v", err)
	}
	want := ref.ThieleSmall()

	base := Parameters{Re: 5, Sd: 0.088, Fs: 40, Qts: 0.31, Qes: 0.33, Qms: 5}

	cases := []struct {
		name string
		mod  func(*Parameters)
	}{
		{"Mms", func(p *Parameters) { p.Mms = want.Mms }},
		{"Cms", func(p *Parameters) { p.Cms = want.Cms }},
		{"Vas", func(p *Parameters) { p.Vas = want.Vas }},
	}
	for _, tc := range cases {
		p := base
		tc.mod(&p)
		m, _, err := Derive(p, e)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		got := m.ThieleSmall()
		if !nearlyEqual(got.Mms, want.Mms, 1e-9) || !nearlyEqual(got.Cms, want.Cms, 1e-9) {
			t.Fatalf("%s: Mms=%g Cms=%g want %g %g", tc.name, got.Mms, got.Cms, want.Mms, want.Cms)
		}
		if !nearlyEqual(got.Bl, 19.2, 1e-9) {
			t.Fatalf("%s: Bl=%g want=19.2", tc.name, got.Bl)
		}
	}
}

func TestDeriveFsFromMassAndCompliance(t *testing.T) {
	p := Parameters{Re: 6, Sd: 0.02, Mms: 0.03, Cms: 1e-3, Qes: 0.5, Qms: 4}
	m, _, err := Derive(p, env.Default())
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	want := 1 / (2 * math.Pi * math.Sqrt(0.03*1e-3))
	if !nearlyEqual(m.Fs(), want, 1e-12) {
		t.Fatalf("Fs=%g want=%g", m.Fs(), want)
	}
}

func TestDeriveInfersQes(t *testing.T) {
	p := Parameters{Re: 5, Bl: 19.2, Sd: 0.088, Fs: 40, Qts: 0.31, Qms: 5}
	m, _, err := Derive(p, env.Default())
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	ts := m.ThieleSmall()
	wantQes := 0.31 * 5 / (5 - 0.31)
	if !nearlyEqual(ts.Qes, wantQes, 1e-12) {
		t.Fatalf("Qes=%g want=%g", ts.Qes, wantQes)
	}
}

func TestDeriveRefitsInconsistentQms(t *testing.T) {
	p := woofer()
	p.Qms = 2.0

	m, warnings, err := Derive(p, env.Default())
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnQmsRefit {
		t.Fatalf("expected one qms-refit warning, got %v", warnings)
	}
	want := 0.31 * 0.33 / (0.33 - 0.31)
	if !nearlyEqual(m.ThieleSmall().Qms, want, 1e-12) {
		t.Fatalf("Qms=%g want=%g", m.ThieleSmall().Qms, want)
	}
}

func TestDeriveWarnsWhenBlDisagrees(t *testing.T) {
	p := woofer()
	p.Mms = 0.12 // Bl²·Qes/(Re·ω₀) ≈ 0.097

	m, warnings, err := Derive(p, env.Default())
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	found := false
	for _, w := range warnings {
		found = found || w.Kind == WarnQesFromBl
	}
	if !found {
		t.Fatalf("expected qes-from-bl warning, got %v", warnings)
	}
	ts := m.ThieleSmall()
	wantQes := 5 * 2 * math.Pi * 40 * 0.12 / (19.2 * 19.2)
	if !nearlyEqual(ts.Qes, wantQes, 1e-12) {
		t.Fatalf("Qes=%g want=%g", ts.Qes, wantQes)
	}
	if !nearlyEqual(1/ts.Qts, 1/ts.Qms+1/ts.Qes, 1e-12) {
		t.Fatalf("Q triad inconsistent after Bl override: %+v", ts)
	}
}

func TestDeriveErrors(t *testing.T) {
	cases := []struct {
		name string
		p    Parameters
	}{
		{"no mass", Parameters{Re: 5, Sd: 0.05, Fs: 40, Qts: 0.4, Qms: 5}},
		{"qes below qts", Parameters{Re: 5, Sd: 0.05, Fs: 40, Qts: 0.4, Qes: 0.3, Mms: 0.05}},
		{"no fs", Parameters{Re: 5, Sd: 0.05, Mms: 0.05, Qes: 0.4, Qms: 5}},
		{"no q", Parameters{Re: 5, Sd: 0.05, Fs: 40, Mms: 0.05, Bl: 10}},
		{"mass below air load", Parameters{Re: 5, Sd: 0.088, Fs: 40, Mms: 0.01, Qes: 0.4, Qms: 5}},
	}
	for _, tc := range cases {
		_, _, err := Derive(tc.p, env.Default())
		if !errors.Is(err, validate.ErrInvalidDriverParameters) {
			t.Fatalf("%s: expected ErrInvalidDriverParameters, got %v", tc.name, err)
		}
		if !errors.Is(err, validate.ErrInvalidParameters) {
			t.Fatalf("%s: driver error must also be ErrInvalidParameters", tc.name)
		}
	}
}

func TestDeriveRangeErrors(t *testing.T) {
	p := woofer()
	p.Re = -1
	_, _, err := Derive(p, env.Default())
	var pe *validate.ParameterError
	if !errors.As(err, &pe) || pe.Field != "Re" {
		t.Fatalf("expected Re range error, got %v", err)
	}
}
