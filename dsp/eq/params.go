package eq

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Parameter ranges exposed to the user.
const (
	MinFreq   = 20.0
	MaxFreq   = 20000.0
	MinGainDB = -24.0
	MaxGainDB = 24.0
	MinQ      = 0.1
	MaxQ      = 10.0
)

// nyquistMargin keeps clamped frequencies strictly below Nyquist.
const nyquistMargin = 0.49

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("eq: invalid parameters")

// Slope is the roll-off steepness of a cut position.
type Slope int

// Slope values. Each step adds one active biquad stage (12 dB/oct).
const (
	Slope12 Slope = iota
	Slope24
	Slope36
	Slope48
)

// Valid reports whether s is one of the four defined slopes.
func (s Slope) Valid() bool {
	return s >= Slope12 && s <= Slope48
}

// Stages returns the number of active biquad stages for s.
func (s Slope) Stages() int {
	return int(s) + 1
}

// Order returns the filter order realized by s.
func (s Slope) Order() int {
	return 2 * s.Stages()
}

// DBPerOctave returns the asymptotic roll-off of s.
func (s Slope) DBPerOctave() int {
	return 12 * s.Stages()
}

func (s Slope) String() string {
	if !s.Valid() {
		return "Slope(" + strconv.Itoa(int(s)) + ")"
	}
	return strconv.Itoa(s.DBPerOctave()) + " dB/oct"
}

// SlopeFromDBPerOctave returns the slope for 12, 24, 36 or 48 dB/oct.
func SlopeFromDBPerOctave(db int) (Slope, error) {
	if db <= 0 || db%12 != 0 || db > 48 {
		return 0, fmt.Errorf("%w: slope %d dB/oct not one of 12, 24, 36, 48", ErrInvalidParams, db)
	}
	return Slope(db/12 - 1), nil
}

// ParseSlope parses "24", "24dB", "24 dB/oct" and similar spellings.
func ParseSlope(text string) (Slope, error) {
	v := strings.ToLower(strings.TrimSpace(text))
	v = strings.TrimSuffix(v, "/oct")
	v = strings.TrimSpace(strings.TrimSuffix(v, "db"))

	db, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: slope %q", ErrInvalidParams, text)
	}
	return SlopeFromDBPerOctave(db)
}

// MarshalText implements encoding.TextMarshaler.
func (s Slope) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: slope %d", ErrInvalidParams, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Slope) UnmarshalText(text []byte) error {
	v, err := ParseSlope(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Params is an immutable snapshot of the user-controlled settings.
type Params struct {
	PeakFreq   float64 `json:"peakFreq"`
	PeakGainDB float64 `json:"peakGainDb"`
	PeakQ      float64 `json:"peakQ"`

	LowCutFreq  float64 `json:"lowCutFreq"`
	HighCutFreq float64 `json:"highCutFreq"`

	LowCutSlope  Slope `json:"lowCutSlope"`
	HighCutSlope Slope `json:"highCutSlope"`

	LowCutBypassed  bool `json:"lowCutBypassed"`
	PeakBypassed    bool `json:"peakBypassed"`
	HighCutBypassed bool `json:"highCutBypassed"`
}

// DefaultParams returns the settings of a freshly inserted equalizer:
// a flat 750 Hz bell and both cuts at the edges of the audible range.
func DefaultParams() Params {
	return Params{
		PeakFreq:     750,
		PeakGainDB:   0,
		PeakQ:        1,
		LowCutFreq:   MinFreq,
		HighCutFreq:  MaxFreq,
		LowCutSlope:  Slope12,
		HighCutSlope: Slope12,
	}
}

// Validate checks p against the parameter ranges and the Nyquist
// frequency of sampleRate.
func (p Params) Validate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidParams, sampleRate)
	}
	nyquist := sampleRate / 2

	freqs := []struct {
		name string
		v    float64
	}{
		{"peak frequency", p.PeakFreq},
		{"low-cut frequency", p.LowCutFreq},
		{"high-cut frequency", p.HighCutFreq},
	}
	for _, f := range freqs {
		if !(f.v >= MinFreq && f.v <= MaxFreq) {
			return fmt.Errorf("%w: %s %v Hz outside [%v, %v]", ErrInvalidParams, f.name, f.v, MinFreq, MaxFreq)
		}
		if f.v >= nyquist {
			return fmt.Errorf("%w: %s %v Hz not below Nyquist %v Hz", ErrInvalidParams, f.name, f.v, nyquist)
		}
	}

	if !(p.PeakGainDB >= MinGainDB && p.PeakGainDB <= MaxGainDB) {
		return fmt.Errorf("%w: peak gain %v dB outside [%v, %v]", ErrInvalidParams, p.PeakGainDB, MinGainDB, MaxGainDB)
	}
	if !(p.PeakQ > 0) || math.IsInf(p.PeakQ, 0) {
		return fmt.Errorf("%w: peak Q %v must be positive", ErrInvalidParams, p.PeakQ)
	}
	if !p.LowCutSlope.Valid() {
		return fmt.Errorf("%w: low-cut slope %d", ErrInvalidParams, int(p.LowCutSlope))
	}
	if !p.HighCutSlope.Valid() {
		return fmt.Errorf("%w: high-cut slope %d", ErrInvalidParams, int(p.HighCutSlope))
	}
	return nil
}

// Clamp returns p with every value forced into its range and all
// frequencies kept below the Nyquist frequency of sampleRate. NaN values
// fall back to the defaults.
func (p Params) Clamp(sampleRate float64) Params {
	def := DefaultParams()
	maxFreq := MaxFrequency(sampleRate)

	p.PeakFreq = clampOr(p.PeakFreq, MinFreq, maxFreq, def.PeakFreq)
	p.LowCutFreq = clampOr(p.LowCutFreq, MinFreq, maxFreq, def.LowCutFreq)
	p.HighCutFreq = clampOr(p.HighCutFreq, MinFreq, maxFreq, maxFreq)
	p.PeakGainDB = clampOr(p.PeakGainDB, MinGainDB, MaxGainDB, def.PeakGainDB)
	p.PeakQ = clampOr(p.PeakQ, MinQ, MaxQ, def.PeakQ)
	p.LowCutSlope = clampSlope(p.LowCutSlope)
	p.HighCutSlope = clampSlope(p.HighCutSlope)
	return p
}

// MaxFrequency returns the highest frequency a position may be tuned to
// at sampleRate: MaxFreq, or 0.49 times the sample rate if that is lower.
func MaxFrequency(sampleRate float64) float64 {
	return min(MaxFreq, sampleRate*nyquistMargin)
}

func clampOr(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		v = fallback
	}
	return core.Clamp(v, lo, hi)
}

func clampSlope(s Slope) Slope {
	if s < Slope12 {
		return Slope12
	}
	if s > Slope48 {
		return Slope48
	}
	return s
}
