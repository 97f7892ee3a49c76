package core

import "math"

// MinMagnitude is the smallest linear magnitude converted to decibels.
// Anything at or below it maps to MinMagnitudeDB.
const MinMagnitude = 1e-12

// MinMagnitudeDB is 20*log10(MinMagnitude).
const MinMagnitudeDB = -240.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Filter state decaying toward silence would otherwise stay subnormal.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// MagnitudeToDB converts a magnitude to dB for display. The absolute value
// is floored at MinMagnitude so zero, subnormal and NaN inputs produce a
// large negative but finite result.
func MagnitudeToDB(mag float64) float64 {
	mag = math.Abs(mag)
	if !(mag > MinMagnitude) {
		return MinMagnitudeDB
	}

	return 20 * math.Log10(mag)
}
