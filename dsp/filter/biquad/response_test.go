package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	c := smoothing()
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		fromResponse := real(h)*real(h) + imag(h)*imag(h)
		fromClosed := c.MagnitudeSquared(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestMagnitude_MatchesAbsResponse(t *testing.T) {
	c := smoothing()
	sr := 44100.0

	for _, freq := range []float64{20, 440, 1000, 8000, 20000} {
		want := cmplx.Abs(c.Response(freq, sr))
		if got := c.Magnitude(freq, sr); !almostEqual(got, want, 1e-10) {
			t.Errorf("freq=%v: Magnitude=%.15f, |H|=%.15f", freq, got, want)
		}
	}
}

func TestMagnitudeDB_MatchesMagnitudeSquared(t *testing.T) {
	c := smoothing()
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		db := c.MagnitudeDB(freq, sr)
		fromSq := 10 * math.Log10(c.MagnitudeSquared(freq, sr))
		if !almostEqual(db, fromSq, 1e-12) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, 10*log10(MagSq)=%.15f", freq, db, fromSq)
		}
	}
}

func TestMagnitudeSquared_NeverNegative(t *testing.T) {
	// Zero at Nyquist: B0 + B1*z^-1 + B2*z^-2 with z=-1 vanishes.
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25}
	if got := c.MagnitudeSquared(24000, 48000); got < 0 {
		t.Fatalf("MagnitudeSquared at the zero = %v, want >= 0", got)
	}
}

func TestPhase_MatchesResponse(t *testing.T) {
	c := smoothing()
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000} {
		fromResponse := cmplx.Phase(c.Response(freq, sr))
		if got := c.Phase(freq, sr); !almostEqual(got, fromResponse, 1e-10) {
			t.Errorf("freq=%v: Phase=%.15f, arg(Response)=%.15f", freq, got, fromResponse)
		}
	}
}

func TestResponse_Passthrough(t *testing.T) {
	c := Identity()
	for _, freq := range []float64{0, 100, 1000, 10000, 24000} {
		if mag := cmplx.Abs(c.Response(freq, 48000)); !almostEqual(mag, 1, 1e-12) {
			t.Errorf("freq=%v: |H|=%v, want 1", freq, mag)
		}
	}
}

func TestResponse_Allpass(t *testing.T) {
	a1, a2 := -0.5, 0.3
	c := Coefficients{B0: a2, B1: a1, B2: 1, A1: a1, A2: a2}
	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		if mag := c.Magnitude(freq, 48000); !almostEqual(mag, 1, 1e-10) {
			t.Errorf("freq=%v: |H|=%.15f, want 1", freq, mag)
		}
	}
}

func TestDCGain_MatchesResponseAtZero(t *testing.T) {
	c := smoothing()
	if got, want := c.DCGain(), real(c.Response(0, 48000)); !almostEqual(got, want, 1e-12) {
		t.Fatalf("DCGain=%v, H(0)=%v", got, want)
	}
}

func TestPolesAndStability(t *testing.T) {
	c := smoothing()
	for i, p := range c.Poles() {
		// z^2 - 0.2z + 0.04 has the conjugate pair 0.1 ± j0.1732, radius 0.2.
		if !almostEqual(real(p), 0.1, 1e-9) || !almostEqual(cmplx.Abs(p), 0.2, 1e-9) {
			t.Errorf("pole %d = %v, want radius 0.2 at real part 0.1", i, p)
		}
	}
	if !c.Stable() {
		t.Fatal("expected stable section")
	}
	if (Coefficients{B0: 1, A1: -2.5, A2: 1}).Stable() {
		t.Fatal("expected unstable section for pole outside unit circle")
	}
	zeros := c.Zeros()
	for i, z := range zeros {
		if !almostEqual(real(z), -1, 1e-6) {
			t.Errorf("zero %d = %v, want -1", i, z)
		}
	}
}
