package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if got := s[12]; math.Abs(got-1) > 1e-12 {
		t.Fatalf("quarter period = %v, want 1", got)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise(42, 0.5, 64)
	b := Noise(42, 0.5, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if math.Abs(a[i]) > 0.5 {
			t.Fatalf("a[%d] = %v exceeds amplitude", i, a[i])
		}
	}
	if c := Noise(43, 0.5, 64); c[0] == a[0] && c[1] == a[1] {
		t.Fatal("different seeds produced the same noise")
	}
}

func TestImpulseAndDC(t *testing.T) {
	imp := Impulse(8, 3)
	if imp[3] != 1 || PeakAbs(imp) != 1 {
		t.Fatalf("impulse = %v", imp)
	}
	if got := Impulse(4, 9); PeakAbs(got) != 0 {
		t.Fatalf("out-of-range impulse = %v", got)
	}
	for i, v := range DC(-0.25, 5) {
		if v != -0.25 {
			t.Fatalf("DC[%d] = %v", i, v)
		}
	}
}

func TestSteadyStatePeak(t *testing.T) {
	x := []float64{5, -4, 0.1, -0.3, 0.2}
	if got := SteadyStatePeak(x, 3); got != 0.3 {
		t.Fatalf("got %v, want 0.3", got)
	}
	if got := SteadyStatePeak(x, 100); got != 5 {
		t.Fatalf("got %v, want 5", got)
	}
}
