package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireDecayed fails t if any of the last tail samples exceeds eps in
// magnitude.
func RequireDecayed(t *testing.T, data []float64, tail int, eps float64) {
	t.Helper()
	if tail > len(data) {
		tail = len(data)
	}
	start := len(data) - tail
	for i, v := range data[start:] {
		if math.Abs(v) > eps {
			t.Fatalf("index %d: |%v| > %v, signal has not decayed", start+i, v, eps)
		}
	}
}

// RequireDBNear fails t if a dB value is further than tol from want.
func RequireDBNear(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Fatalf("%s: %.4f dB, want %.4f ± %.4f dB", label, got, want, tol)
	}
}
