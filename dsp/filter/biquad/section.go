package biquad

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns coefficients that pass the input through unchanged.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// Section is a single biquad filter stage with coefficients and internal
// state. The zero value is a passthrough stage.
//
// Processing methods advance the delay line and must be called from a
// single goroutine. Coefficients and MagnitudeAt may be called from any
// goroutine. SetCoefficients may too, as long as two calls never overlap.
type Section struct {
	// seq is a sequence lock over coeffs: odd while a write is in
	// progress, zero until the first write.
	seq    atomic.Uint64
	coeffs [5]atomic.Uint64

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	s := &Section{}
	s.SetCoefficients(c)
	return s
}

// Coefficients returns the current coefficient set.
func (s *Section) Coefficients() Coefficients {
	return s.load()
}

// SetCoefficients replaces the coefficient set as a single value without
// allocating. Readers never observe a mix of old and new coefficients.
// The delay line is kept so the output stays continuous across the change.
func (s *Section) SetCoefficients(c Coefficients) {
	s.seq.Add(1)
	s.coeffs[0].Store(math.Float64bits(c.B0))
	s.coeffs[1].Store(math.Float64bits(c.B1))
	s.coeffs[2].Store(math.Float64bits(c.B2))
	s.coeffs[3].Store(math.Float64bits(c.A1))
	s.coeffs[4].Store(math.Float64bits(c.A2))
	s.seq.Add(1)
}

func (s *Section) load() Coefficients {
	for {
		seq := s.seq.Load()
		if seq == 0 {
			return Identity()
		}
		if seq&1 != 0 {
			continue
		}
		c := Coefficients{
			B0: math.Float64frombits(s.coeffs[0].Load()),
			B1: math.Float64frombits(s.coeffs[1].Load()),
			B2: math.Float64frombits(s.coeffs[2].Load()),
			A1: math.Float64frombits(s.coeffs[3].Load()),
			A2: math.Float64frombits(s.coeffs[4].Load()),
		}
		if s.seq.Load() == seq {
			return c
		}
	}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	c := s.load()

	y := c.B0*x + s.d0
	s.d0 = c.B1*x - c.A1*y + s.d1
	s.d1 = c.B2*x - c.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
// Delay-line values that have decayed below 1e-30 are flushed to zero at
// the end of the block.
//
// The coefficients are loaded once, so a concurrent SetCoefficients takes
// effect at the next block, never in the middle of this one.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.load()
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	d0, d1 := s.d0, s.d1

	i := 0

	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = core.FlushDenormals(d0), core.FlushDenormals(d1)
}

// Reset clears the delay line to zero. Call it when the input stream is
// discontinuous, e.g. after a transport restart.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// MagnitudeAt returns |H(f)| for the current coefficients. It does not read
// or modify the delay line.
func (s *Section) MagnitudeAt(freqHz, sampleRate float64) float64 {
	return s.load().Magnitude(freqHz, sampleRate)
}
