package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

// Errors returned by measurement functions.
var (
	ErrInvalidFFTSize    = errors.New("response: FFT size must be a power of two >= 16")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

// Default analysis band and floor.
const (
	DefaultLowerHz = eq.MinFreq
	DefaultUpperHz = eq.MaxFreq

	// DefaultFloorDB excludes bins where the analytic response is so far
	// down that truncation of the impulse response dominates.
	DefaultFloorDB = -60.0
)

// Report summarizes the agreement between measured and analytic
// responses.
type Report struct {
	SampleRate     float64
	FFTSize        int
	Bins           int     // bins compared
	MaxDeviationDB float64 // largest |measured - analytic|
	MeanDeviation  float64 // mean |measured - analytic| in dB
	WorstFreqHz    float64 // frequency of the largest deviation
}

// ImpulseResponse returns the first n samples of chain's impulse
// response. The chain itself is not modified; a clone with cleared state
// is used.
func ImpulseResponse(chain *eq.Chain, n int) []float64 {
	if n <= 0 {
		return nil
	}
	ir := make([]float64, n)
	ir[0] = 1
	chain.Clone().ProcessBlock(ir)
	return ir
}

// BinFrequency returns the center frequency of bin k.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(fftSize)
}

func validate(sampleRate float64, fftSize int) error {
	if !(sampleRate > 0) {
		return ErrInvalidSampleRate
	}
	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	return nil
}

// MeasuredResponse returns the magnitude in dB of bins 0..fftSize/2 of
// the chain's impulse response.
func MeasuredResponse(chain *eq.Chain, sampleRate float64, fftSize int) ([]float64, error) {
	if err := validate(sampleRate, fftSize); err != nil {
		return nil, err
	}

	ir := ImpulseResponse(chain, fftSize)
	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	for k, m := range mag {
		mag[k] = core.MagnitudeToDB(m)
	}
	return mag, nil
}

// Compare measures chain and compares every bin inside [lowerHz, upperHz]
// (capped below Nyquist) whose analytic level is above floorDB.
func Compare(chain *eq.Chain, sampleRate float64, fftSize int, lowerHz, upperHz, floorDB float64) (Report, error) {
	measured, err := MeasuredResponse(chain, sampleRate, fftSize)
	if err != nil {
		return Report{}, err
	}
	upperHz = math.Min(upperHz, 0.5*sampleRate)

	rep := Report{SampleRate: sampleRate, FFTSize: fftSize}
	sum := 0.0
	for k, got := range measured {
		f := BinFrequency(k, fftSize, sampleRate)
		if f < lowerHz || f > upperHz {
			continue
		}
		want := chain.MagnitudeDB(f, sampleRate)
		if want < floorDB {
			continue
		}
		dev := math.Abs(got - want)
		sum += dev
		rep.Bins++
		if dev > rep.MaxDeviationDB {
			rep.MaxDeviationDB = dev
			rep.WorstFreqHz = f
		}
	}
	if rep.Bins > 0 {
		rep.MeanDeviation = sum / float64(rep.Bins)
	}
	return rep, nil
}

// CompareAnalytic builds a chain from params and compares its measured
// response against the analytic one over the audible band.
func CompareAnalytic(params eq.Params, sampleRate float64, fftSize int) (Report, error) {
	if err := validate(sampleRate, fftSize); err != nil {
		return Report{}, err
	}
	if err := params.Validate(sampleRate); err != nil {
		return Report{}, err
	}
	chain := eq.NewChain()
	chain.Update(params, sampleRate)
	return Compare(chain, sampleRate, fftSize, DefaultLowerHz, DefaultUpperHz, DefaultFloorDB)
}
