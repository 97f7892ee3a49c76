// Package testutil holds signal generators and assertions shared by the
// equalizer tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine returns n samples of a sine at freqHz starting at phase 0.
func Sine(freqHz, sampleRate, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise returns n samples of uniform white noise from a fixed seed.
func Noise(seed int64, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse returns a unit impulse at pos.
func Impulse(n, pos int) []float64 {
	out := make([]float64, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}
	return out
}

// DC returns a constant signal.
func DC(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// PeakAbs returns the largest absolute sample value.
func PeakAbs(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// SteadyStatePeak returns PeakAbs of the last tail samples, after any
// filter transient has died out.
func SteadyStatePeak(x []float64, tail int) float64 {
	if tail > len(x) {
		tail = len(x)
	}
	return PeakAbs(x[len(x)-tail:])
}
