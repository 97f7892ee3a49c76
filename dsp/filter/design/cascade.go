package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// MaxOrder is the highest cascade order a cut position can hold: four
// second-order sections.
const MaxOrder = 8

// LowCut designs the low-cut (highpass) cascade of the given order. Even
// orders 2, 4, 6 and 8 yield 1 to 4 biquads, i.e. 12 to 48 dB/oct.
func LowCut(freq, sampleRate float64, order int) []biquad.Coefficients {
	return AppendLowCut(nil, freq, sampleRate, order)
}

// HighCut designs the high-cut (lowpass) cascade of the given order.
func HighCut(freq, sampleRate float64, order int) []biquad.Coefficients {
	return AppendHighCut(nil, freq, sampleRate, order)
}

// AppendLowCut appends the LowCut cascade to dst and returns the extended
// slice. A dst with room for MaxOrder/2 sections is never reallocated.
func AppendLowCut(dst []biquad.Coefficients, freq, sampleRate float64, order int) []biquad.Coefficients {
	mustOrder(order)
	return appendButterworthHP(dst, freq, order, sampleRate)
}

// AppendHighCut appends the HighCut cascade to dst and returns the
// extended slice.
func AppendHighCut(dst []biquad.Coefficients, freq, sampleRate float64, order int) []biquad.Coefficients {
	mustOrder(order)
	return appendButterworthLP(dst, freq, order, sampleRate)
}

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	return appendButterworthLP(make([]biquad.Coefficients, 0, (order+1)/2), freq, order, sampleRate)
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	return appendButterworthHP(make([]biquad.Coefficients, 0, (order+1)/2), freq, order, sampleRate)
}

func appendButterworthLP(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) []biquad.Coefficients {
	for i := order/2 - 1; i >= 0; i-- {
		dst = append(dst, Lowpass(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		dst = append(dst, butterworthFirstOrderLP(freq, sampleRate))
	}
	return dst
}

func appendButterworthHP(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) []biquad.Coefficients {
	for i := order/2 - 1; i >= 0; i-- {
		dst = append(dst, Highpass(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		dst = append(dst, butterworthFirstOrderHP(freq, sampleRate))
	}
	return dst
}

func mustOrder(order int) {
	if order < 1 || order > MaxOrder {
		panic(fmt.Sprintf("design: cascade order %d outside [1, %d]", order, MaxOrder))
	}
}

// butterworthQ returns the quality factor of one Butterworth pole pair.
// index ranges from 0 to (order/2 - 1).
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	return 1 / (2 * math.Sin(theta))
}

func butterworthFirstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	mustW0(freq, sampleRate)
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)
	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func butterworthFirstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	mustW0(freq, sampleRate)
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)
	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}
