package observe_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-speaker/speaker/observe"
)

func ExampleMagnitude() {
	z := []complex128{3 + 4i, 0 + 2i}
	mag := observe.Magnitude(z)
	fmt.Printf("%.1f %.1f\n", mag[0], mag[1])
	// Output:
	// 5.0 2.0
}

func ExampleGroupDelay() {
	// A 1 ms pure delay sampled on a non-uniform grid.
	freq := []float64{100, 150, 250, 400}
	phase := make([]float64, len(freq))
	for i, f := range freq {
		phase[i] = -2 * math.Pi * f * 1e-3
	}
	gd, _ := observe.GroupDelay(freq, phase)
	fmt.Printf("%.2f %.2f ms\n", 1e3*gd[0], 1e3*gd[3])
	// Output:
	// 1.00 1.00 ms
}

func ExampleStepAnalyzer_Analyze() {
	sampleRate := 10000.0
	x := make([]float64, 2000)
	for i := range x {
		t := float64(i) / sampleRate
		x[i] = math.Exp(-t/0.02) * math.Sin(2*math.Pi*50*t)
	}

	m, err := observe.NewStepAnalyzer(sampleRate).Analyze(x)
	if err != nil {
		panic(err)
	}
	fmt.Printf("first zero = %.1f ms\n", m.ZeroCrossings[0])
	fmt.Printf("ringing    = %.1f Hz\n", m.RingingFrequency)
	// Output:
	// first zero = 10.0 ms
	// ringing    = 50.0 Hz
}
