package design_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

func ExampleLowCut() {
	sections := design.LowCut(1000, 48000, 4)

	for _, f := range []float64{100, 1000, 2000} {
		mag := 1.0
		for _, c := range sections {
			mag *= c.Magnitude(f, 48000)
		}
		fmt.Printf("%5.0f Hz: %.2f dB\n", f, 20*math.Log10(mag))
	}
	// Output:
	//   100 Hz: -80.05 dB
	//  1000 Hz: -3.01 dB
	//  2000 Hz: -0.02 dB
}

func ExamplePeak() {
	c := design.Peak(1000, 6, 1, 48000)

	for _, f := range []float64{100, 1000, 10000} {
		fmt.Printf("%5.0f Hz: %.2f dB\n", f, c.MagnitudeDB(f, 48000))
	}
	// Output:
	//   100 Hz: 0.07 dB
	//  1000 Hz: 6.00 dB
	// 10000 Hz: 0.05 dB
}
