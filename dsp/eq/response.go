package eq

// Point is a vertex of a response curve in pixel coordinates.
type Point struct {
	X, Y float64
}

// Rect is a plotting area in pixel coordinates with Y growing downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Frequencies returns width log-spaced frequencies, entry i at
// position i/width.
func (m Mapper) Frequencies(width int) []float64 {
	if width <= 0 {
		return nil
	}
	freqs := make([]float64, width)
	for i := range freqs {
		freqs[i] = m.FrequencyFor(float64(i) / float64(width))
	}
	return freqs
}

// SampleResponse returns the chain's magnitude in dB for each of
// pixelWidth columns spread log-uniformly from 20 Hz to 20 kHz. The
// chain's filter state is not read or modified.
func SampleResponse(chain *Chain, sampleRate float64, pixelWidth int) []float64 {
	return SampleResponseWith(chain, sampleRate, pixelWidth, DefaultMapper)
}

// SampleResponseWith is SampleResponse with a custom frequency range.
func SampleResponseWith(chain *Chain, sampleRate float64, pixelWidth int, m Mapper) []float64 {
	freqs := m.Frequencies(pixelWidth)
	if freqs == nil {
		return nil
	}
	return chain.MagnitudesDB(nil, freqs, sampleRate)
}

// ResponseCurve samples chain across area and returns one point per
// pixel column, x advancing by one pixel from area.Left and y mapped
// with m. Values beyond m's dB range land outside area.
func ResponseCurve(chain *Chain, sampleRate float64, area Rect, m Mapper) []Point {
	width := int(area.Width)
	mags := SampleResponseWith(chain, sampleRate, width, m)
	if len(mags) == 0 {
		return nil
	}
	points := make([]Point, len(mags))
	for i, db := range mags {
		points[i] = Point{
			X: area.Left() + float64(i),
			Y: m.YFor(db, area.Top(), area.Bottom()),
		}
	}
	return points
}
