// Package level measures peak and RMS levels of multi-channel audio.
package level

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Levels holds the peak and RMS level of a signal, linear and in dBFS.
// Silence reads as core.MinMagnitudeDB.
type Levels struct {
	Frames        int
	Peak          float64
	PeakDB        float64
	RMS           float64
	RMSDB         float64
	CrestFactorDB float64
}

// Measure computes the levels over all channels. Channels of differing
// length are measured over the samples they carry.
func Measure(channels [][]float64) Levels {
	var (
		peak    float64
		sumSq   float64
		samples int
		frames  int
	)
	for _, ch := range channels {
		if len(ch) > frames {
			frames = len(ch)
		}
		for _, x := range ch {
			a := math.Abs(x)
			if a > peak {
				peak = a
			}
			sumSq += x * x
		}
		samples += len(ch)
	}

	l := Levels{
		Frames: frames,
		Peak:   peak,
		PeakDB: core.MagnitudeToDB(peak),
		RMSDB:  core.MinMagnitudeDB,
	}
	if samples == 0 {
		return l
	}
	l.RMS = math.Sqrt(sumSq / float64(samples))
	l.RMSDB = core.MagnitudeToDB(l.RMS)
	if l.RMS > 0 {
		l.CrestFactorDB = l.PeakDB - l.RMSDB
	}

	return l
}

// GainDB returns the RMS level change from before to after in dB.
// Returns 0 when either signal is silent.
func GainDB(before, after Levels) float64 {
	if before.RMS == 0 || after.RMS == 0 {
		return 0
	}

	return after.RMSDB - before.RMSDB
}
