package eq

import (
	"strconv"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Position identifies one of the three filter slots of a Chain.
type Position int

// Chain positions in processing order.
const (
	LowCut Position = iota
	Peak
	HighCut

	numPositions
)

func (p Position) String() string {
	switch p {
	case LowCut:
		return "low-cut"
	case Peak:
		return "peak"
	case HighCut:
		return "high-cut"
	default:
		return "Position(" + strconv.Itoa(int(p)) + ")"
	}
}

// Chain is the fixed LowCut → Peak → HighCut signal path. A bypassed
// position contributes neither to the output nor to the magnitude
// response. A new Chain is a passthrough with no position bypassed.
type Chain struct {
	lowCut  Cascade
	peak    biquad.Section
	highCut Cascade

	bypassed [numPositions]atomic.Bool
}

// NewChain returns a passthrough chain.
func NewChain() *Chain {
	return &Chain{}
}

// LowCut returns the low-cut cascade.
func (c *Chain) LowCut() *Cascade { return &c.lowCut }

// Peak returns the peak section.
func (c *Chain) Peak() *biquad.Section { return &c.peak }

// HighCut returns the high-cut cascade.
func (c *Chain) HighCut() *Cascade { return &c.highCut }

// SetBypassed sets the bypass flag of pos. Unknown positions are ignored.
func (c *Chain) SetBypassed(pos Position, bypassed bool) {
	if pos < 0 || pos >= numPositions {
		return
	}
	c.bypassed[pos].Store(bypassed)
}

// IsBypassed reports whether pos is bypassed.
func (c *Chain) IsBypassed(pos Position) bool {
	if pos < 0 || pos >= numPositions {
		return false
	}
	return c.bypassed[pos].Load()
}

// Update redesigns every position from p at sampleRate and applies the
// bypass flags without allocating. p must already satisfy Params.Validate; the designers
// panic on out-of-domain values. Use Params.Clamp at the input boundary.
func (c *Chain) Update(p Params, sampleRate float64) {
	var buf [MaxStages]biquad.Coefficients

	c.peak.SetCoefficients(design.Peak(p.PeakFreq, p.PeakGainDB, p.PeakQ, sampleRate))
	c.lowCut.Configure(p.LowCutSlope, design.AppendLowCut(buf[:0], p.LowCutFreq, sampleRate, p.LowCutSlope.Order()))
	c.highCut.Configure(p.HighCutSlope, design.AppendHighCut(buf[:0], p.HighCutFreq, sampleRate, p.HighCutSlope.Order()))

	c.SetBypassed(LowCut, p.LowCutBypassed)
	c.SetBypassed(Peak, p.PeakBypassed)
	c.SetBypassed(HighCut, p.HighCutBypassed)
}

// ProcessSample runs one sample through the non-bypassed positions.
func (c *Chain) ProcessSample(x float64) float64 {
	if !c.bypassed[LowCut].Load() {
		x = c.lowCut.ProcessSample(x)
	}
	if !c.bypassed[Peak].Load() {
		x = c.peak.ProcessSample(x)
	}
	if !c.bypassed[HighCut].Load() {
		x = c.highCut.ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place. Bypass flags are read once per
// block. It does not allocate.
func (c *Chain) ProcessBlock(buf []float64) {
	if !c.bypassed[LowCut].Load() {
		c.lowCut.ProcessBlock(buf)
	}
	if !c.bypassed[Peak].Load() {
		c.peak.ProcessBlock(buf)
	}
	if !c.bypassed[HighCut].Load() {
		c.highCut.ProcessBlock(buf)
	}
}

// Reset clears all filter state.
func (c *Chain) Reset() {
	c.lowCut.Reset()
	c.peak.Reset()
	c.highCut.Reset()
}

// Magnitude returns the linear magnitude of the chain at freqHz: the
// product over non-bypassed positions and, within a cut, over its active
// stages. It never touches filter state.
func (c *Chain) Magnitude(freqHz, sampleRate float64) float64 {
	mag := 1.0
	if !c.IsBypassed(LowCut) {
		mag *= c.lowCut.Magnitude(freqHz, sampleRate)
	}
	if !c.IsBypassed(Peak) {
		mag *= c.peak.MagnitudeAt(freqHz, sampleRate)
	}
	if !c.IsBypassed(HighCut) {
		mag *= c.highCut.Magnitude(freqHz, sampleRate)
	}
	return mag
}

// MagnitudeDB returns Magnitude in decibels, floored at
// core.MinMagnitudeDB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.MagnitudeToDB(c.Magnitude(freqHz, sampleRate))
}

// MagnitudesDB evaluates MagnitudeDB at every frequency in freqs and
// writes the result into dst, which is grown if needed.
func (c *Chain) MagnitudesDB(dst, freqs []float64, sampleRate float64) []float64 {
	dst = core.EnsureLen(dst, len(freqs))
	if len(freqs) == 0 {
		return dst
	}
	core.Fill(dst, 1)
	scratch := make([]float64, len(freqs))

	if !c.IsBypassed(LowCut) {
		c.lowCut.multiplyMagnitudes(dst, scratch, freqs, sampleRate)
	}
	if !c.IsBypassed(Peak) {
		coeffs := c.peak.Coefficients()
		for i, f := range freqs {
			scratch[i] = coeffs.Magnitude(f, sampleRate)
		}
		vecmath.MulBlockInPlace(dst, scratch)
	}
	if !c.IsBypassed(HighCut) {
		c.highCut.multiplyMagnitudes(dst, scratch, freqs, sampleRate)
	}

	for i, m := range dst {
		dst[i] = core.MagnitudeToDB(m)
	}
	return dst
}

// Clone returns a chain with the same coefficients, active stage counts
// and bypass flags as c, and cleared state.
func (c *Chain) Clone() *Chain {
	out := NewChain()
	out.lowCut.copyFrom(&c.lowCut)
	out.peak.SetCoefficients(c.peak.Coefficients())
	out.highCut.copyFrom(&c.highCut)
	for i := range c.bypassed {
		out.bypassed[i].Store(c.bypassed[i].Load())
	}
	return out
}
