package eq

import "math"

// Mapper converts between normalized horizontal positions and
// frequencies on a log scale, and between dB values and vertical pixel
// coordinates on a linear scale.
type Mapper struct {
	MinHz, MaxHz float64
	MinDB, MaxDB float64
}

// DefaultMapper spans 20 Hz to 20 kHz horizontally and -24 to +24 dB
// vertically.
var DefaultMapper = Mapper{
	MinHz: MinFreq,
	MaxHz: MaxFreq,
	MinDB: MinGainDB,
	MaxDB: MaxGainDB,
}

// FrequencyFor maps t in [0, 1] to a frequency. t=0 yields MinHz and t=1
// yields MaxHz exactly; equal steps in t are equal frequency ratios.
func (m Mapper) FrequencyFor(t float64) float64 {
	switch t {
	case 0:
		return m.MinHz
	case 1:
		return m.MaxHz
	}
	return m.MinHz * math.Pow(m.MaxHz/m.MinHz, t)
}

// PositionFor is the inverse of FrequencyFor.
func (m Mapper) PositionFor(freqHz float64) float64 {
	return math.Log(freqHz/m.MinHz) / math.Log(m.MaxHz/m.MinHz)
}

// YFor maps db linearly so that MinDB lands on bottom and MaxDB on top.
// Values outside the range are extrapolated, not clamped.
func (m Mapper) YFor(db, top, bottom float64) float64 {
	return bottom + (db-m.MinDB)/(m.MaxDB-m.MinDB)*(top-bottom)
}

// FrequencyFor maps t in [0, 1] onto 20 Hz to 20 kHz using DefaultMapper.
func FrequencyFor(t float64) float64 {
	return DefaultMapper.FrequencyFor(t)
}

// YFor maps db in [-24, 24] onto [bottom, top] using DefaultMapper.
func YFor(db, top, bottom float64) float64 {
	return DefaultMapper.YFor(db, top, bottom)
}
