package sim_test

import (
	"fmt"

	"github.com/cwbudde/algo-speaker/speaker/driver"
	"github.com/cwbudde/algo-speaker/speaker/enclosure"
	"github.com/cwbudde/algo-speaker/speaker/grid"
	"github.com/cwbudde/algo-speaker/speaker/sim"
)

func ExampleSimulate() {
	g, err := grid.Log(10, 300, 200)
	if err != nil {
		panic(err)
	}
	res, err := sim.Simulate(
		driver.Parameters{Re: 5, Le: 1.75e-3, Bl: 19.2, Sd: 0.088, Fs: 40, Qts: 0.31, Qes: 0.33, Qms: 5},
		enclosure.BassReflex{Vb: 0.030, Fp: 28.5, PortDiameter: 0.12},
		g,
	)
	if err != nil {
		panic(err)
	}
	port := res.Enclosure.Outlets[0]
	fmt.Printf("%s, %s %.2f m long\n", res.Enclosure.Kind, port.Name, port.Length)
	fmt.Println("points:", len(res.SPL), "warnings:", len(res.Warnings))
	// Output:
	// bass-reflex, port 1.30 m long
	// points: 200 warnings: 0
}
