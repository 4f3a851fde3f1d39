package sim

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-speaker/speaker/enclosure"
	"github.com/cwbudde/algo-speaker/speaker/grid"
)

func TestSeriesMarshalNaNAsNull(t *testing.T) {
	b, err := json.Marshal(Series{1.5, math.NaN(), math.Inf(1), -2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(b), "[1.5,null,null,-2]"; got != want {
		t.Fatalf("got %s want %s", got, want)
	}

	b, err = json.Marshal(ComplexSeries{complex(1, -0.5), complex(math.NaN(), 0)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(b), `[{"re":1,"im":-0.5},null]`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}

	var back []*float64
	if err := json.Unmarshal([]byte("[1.5,null]"), &back); err != nil || back[1] != nil {
		t.Fatalf("null must decode as a missing value: %v", err)
	}
}

func TestResultsJSONContract(t *testing.T) {
	br := enclosure.BassReflex{Vb: 0.030, Fp: 28.5, PortDiameter: 0.12}
	res, err := Simulate(woofer, br, grid.Grid{20, 50, 100, 500}, WithStepResponse(true))
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{
		"freq", "Z", "Z_mag", "Z_phase_deg", "SPL", "SPL_phase_deg",
		"SPL_cone", "SPL_port", "displacement_mm", "velocity", "group_delay_ms",
		"port_velocity", "reliable", "warnings", "driver", "enclosure",
		"step_response", "step_metrics",
	} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("JSON lacks %q", key)
		}
	}

	var drv map[string]any
	if err := json.Unmarshal(doc["driver"], &drv); err != nil {
		t.Fatalf("driver: %v", err)
	}
	if _, ok := drv["sensitivity_dB"]; !ok {
		t.Fatalf("driver summary lacks sensitivity: %s", doc["driver"])
	}
	if !strings.Contains(string(doc["enclosure"]), `"bass-reflex"`) {
		t.Fatalf("enclosure kind missing: %s", doc["enclosure"])
	}
}
