package eq

import (
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// MaxStages is the fixed stage capacity of a Cascade.
const MaxStages = 4

// Cascade is a fixed bank of MaxStages biquad sections of which the first
// ActiveStages are applied in order. Inactive stages keep their
// coefficients and state but are skipped. The zero value has no active
// stages and passes audio through.
//
// Configure may run on any goroutine; processing must stay on one.
type Cascade struct {
	stages [MaxStages]biquad.Section
	active atomic.Int32
}

// Configure installs coeffs into the leading stages and activates as
// many of them as slope asks for. The active count is clamped to the
// number of coefficient sets supplied and to MaxStages.
func (c *Cascade) Configure(slope Slope, coeffs []biquad.Coefficients) {
	n := min(slope.Stages(), len(coeffs), MaxStages)
	for i := range n {
		c.stages[i].SetCoefficients(coeffs[i])
	}
	c.SetActiveStages(n)
}

// SetActiveStages activates the first n stages, clamped to [0, MaxStages].
func (c *Cascade) SetActiveStages(n int) {
	n = max(0, min(n, MaxStages))
	c.active.Store(int32(n))
}

// ActiveStages returns the number of stages currently applied.
func (c *Cascade) ActiveStages() int {
	return int(c.active.Load())
}

// Stage returns stage i for inspection. It panics if i is out of range.
func (c *Cascade) Stage(i int) *biquad.Section {
	return &c.stages[i]
}

// ProcessSample runs x through the active stages.
func (c *Cascade) ProcessSample(x float64) float64 {
	n := c.active.Load()
	for i := range n {
		x = c.stages[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place. The active count is read once per
// block.
func (c *Cascade) ProcessBlock(buf []float64) {
	n := c.active.Load()
	for i := range n {
		c.stages[i].ProcessBlock(buf)
	}
}

// Reset clears the delay lines of all stages, active or not.
func (c *Cascade) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}

// Magnitude returns the product of the active stages' |H(f)|.
func (c *Cascade) Magnitude(freqHz, sampleRate float64) float64 {
	mag := 1.0
	n := c.active.Load()
	for i := range n {
		mag *= c.stages[i].MagnitudeAt(freqHz, sampleRate)
	}
	return mag
}

// multiplyMagnitudes scales dst[j] by the cascade magnitude at freqs[j].
// scratch must be at least len(freqs) long.
func (c *Cascade) multiplyMagnitudes(dst, scratch, freqs []float64, sampleRate float64) {
	scratch = scratch[:len(freqs)]
	n := c.active.Load()
	for i := range n {
		coeffs := c.stages[i].Coefficients()
		for j, f := range freqs {
			scratch[j] = coeffs.Magnitude(f, sampleRate)
		}
		vecmath.MulBlockInPlace(dst, scratch)
	}
}

// copyFrom copies coefficients and active count from src. Delay lines
// are left untouched.
func (c *Cascade) copyFrom(src *Cascade) {
	for i := range c.stages {
		c.stages[i].SetCoefficients(src.stages[i].Coefficients())
	}
	c.active.Store(src.active.Load())
}
