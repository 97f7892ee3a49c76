package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// Lowpass designs an RBJ lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := mustW0(freq, sampleRate)
	mustQ(q)

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Highpass designs an RBJ highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := mustW0(freq, sampleRate)
	mustQ(q)

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Peak designs a peaking (bell) biquad with gain in dB. The magnitude at
// freq equals gainDB exactly; far from freq it approaches 0 dB.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0 := mustW0(freq, sampleRate)
	mustQ(q)

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func mustW0(freq, sampleRate float64) float64 {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		panic(fmt.Sprintf("design: invalid sample rate %v", sampleRate))
	}

	nyquist := sampleRate / 2
	if !(freq > 0 && freq < nyquist) {
		panic(fmt.Sprintf("design: frequency %v Hz outside (0, %v)", freq, nyquist))
	}

	return 2 * math.Pi * freq / sampleRate
}

func mustQ(q float64) {
	if !(q > 0) || math.IsInf(q, 0) {
		panic(fmt.Sprintf("design: invalid Q %v", q))
	}
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
