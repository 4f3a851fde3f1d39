package observe

import (
	"errors"
	"math"
)

// Errors returned by step analysis.
var (
	ErrEmptyStep         = errors.New("observe: step response is empty")
	ErrInvalidSampleRate = errors.New("observe: sample rate must be positive")
)

// DefaultHysteresis is the zero-crossing hysteresis relative to the peak.
const DefaultHysteresis = 0.01

// StepMetrics summarises a step response. Times are in milliseconds.
type StepMetrics struct {
	PeakIndex        int
	PeakTime         float64
	Peak             float64 // signed peak value
	RiseTime         float64 // 10 % to 90 % of the peak, 0 if not found
	Undershoot       float64 // largest opposite-sign excursion after the peak, relative to |Peak|
	ZeroCrossings    []float64
	RingingFrequency float64 // Hz, 0 with fewer than two crossings
}

// StepAnalyzer computes StepMetrics from sampled step responses.
type StepAnalyzer struct {
	SampleRate float64
	// Hysteresis is the fraction of |peak| the signal must exceed on the
	// far side of zero before a crossing counts.
	Hysteresis float64
}

// NewStepAnalyzer returns an analyzer with DefaultHysteresis.
func NewStepAnalyzer(sampleRate float64) *StepAnalyzer {
	return &StepAnalyzer{SampleRate: sampleRate, Hysteresis: DefaultHysteresis}
}

// Analyze computes all metrics of x.
func (a *StepAnalyzer) Analyze(x []float64) (StepMetrics, error) {
	if len(x) == 0 {
		return StepMetrics{}, ErrEmptyStep
	}
	if a.SampleRate <= 0 {
		return StepMetrics{}, ErrInvalidSampleRate
	}

	peakIdx := a.findPeak(x)
	peak := x[peakIdx]
	m := StepMetrics{
		PeakIndex: peakIdx,
		PeakTime:  a.ms(float64(peakIdx)),
		Peak:      peak,
	}
	if peak == 0 {
		return m, nil
	}

	m.RiseTime = a.riseTime(x[:peakIdx+1], peak)
	m.Undershoot = a.undershoot(x[peakIdx:], peak)
	m.ZeroCrossings = a.zeroCrossings(x, peakIdx, peak)
	if n := len(m.ZeroCrossings); n >= 2 {
		span := (m.ZeroCrossings[n-1] - m.ZeroCrossings[0]) / 1e3
		m.RingingFrequency = float64(n-1) / (2 * span)
	}
	return m, nil
}

// findPeak returns the index of the absolute maximum.
func (a *StepAnalyzer) findPeak(x []float64) int {
	peakIdx := 0
	peakVal := math.Abs(x[0])
	for i, v := range x {
		if av := math.Abs(v); av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}
	return peakIdx
}

// riseTime returns the interpolated time from 10 % to 90 % of peak on the
// leading edge.
func (a *StepAnalyzer) riseTime(edge []float64, peak float64) float64 {
	t10 := a.crossing(edge, 0.1*peak)
	t90 := a.crossing(edge, 0.9*peak)
	if t10 < 0 || t90 < 0 || t90 < t10 {
		return 0
	}
	return a.ms(t90 - t10)
}

// crossing returns the fractional sample index where x first reaches level,
// moving towards the sign of level, or -1.
func (a *StepAnalyzer) crossing(x []float64, level float64) float64 {
	s := math.Copysign(1, level)
	for i, v := range x {
		if s*v < s*level {
			continue
		}
		if i == 0 {
			return 0
		}
		prev := x[i-1]
		return float64(i-1) + (level-prev)/(v-prev)
	}
	return -1
}

func (a *StepAnalyzer) undershoot(tail []float64, peak float64) float64 {
	s := math.Copysign(1, peak)
	worst := 0.0
	for _, v := range tail {
		if d := -s * v; d > worst {
			worst = d
		}
	}
	return worst / math.Abs(peak)
}

// zeroCrossings returns the interpolated zero times after the peak. A
// crossing is only counted once the signal has left the ±h band on the new
// side, which suppresses numerical noise in the decayed tail.
func (a *StepAnalyzer) zeroCrossings(x []float64, from int, peak float64) []float64 {
	h := a.Hysteresis * math.Abs(peak)
	state := math.Copysign(1, peak)
	last := from // last sample on the armed side
	var out []float64
	for i := from + 1; i < len(x); i++ {
		v := x[i]
		switch {
		case state*v > h:
			last = i
		case -state*v > h:
			out = append(out, a.ms(a.zeroBetween(x, last, i)))
			state = -state
			last = i
		}
	}
	return out
}

// zeroBetween returns the fractional index of the last sign change of x in
// [lo, hi].
func (a *StepAnalyzer) zeroBetween(x []float64, lo, hi int) float64 {
	for i := hi; i > lo; i-- {
		p, v := x[i-1], x[i]
		if p == 0 {
			return float64(i - 1)
		}
		if (p > 0) != (v > 0) {
			return float64(i-1) + p/(p-v)
		}
	}
	return float64(hi)
}

func (a *StepAnalyzer) ms(samples float64) float64 {
	return 1e3 * samples / a.SampleRate
}

// AnalyzeStep analyzes the causal first half of r. The second half of a
// circular step response holds the wrap-around of the pre-response.
func AnalyzeStep(r *StepResponse) (StepMetrics, error) {
	return NewStepAnalyzer(r.SampleRate).Analyze(r.X[:len(r.X)/2])
}
