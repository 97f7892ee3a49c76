package render

import (
	"bytes"
	"io"
	"strconv"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// Default colours follow the classic editor look: black background,
// orange response area and a white curve.
const (
	DefaultBackground = "#000000"
	DefaultFrame      = "#ffa500"
	DefaultCurve      = "#ffffff"
)

// SVG builds an SVG document from drawing commands. Each Clear starts a
// new document.
type SVG struct {
	Background string
	Frame      string
	Curve      string
	StrokeWide float64

	width, height float64
	body          bytes.Buffer
}

// NewSVG returns an SVG surface with the default colours.
func NewSVG() *SVG {
	return &SVG{
		Background: DefaultBackground,
		Frame:      DefaultFrame,
		Curve:      DefaultCurve,
		StrokeWide: 2,
	}
}

// Clear starts a new document of width x height filled with the
// background colour.
func (s *SVG) Clear(width, height float64) {
	s.width, s.height = width, height
	s.body.Reset()
	s.body.WriteString(`<rect x="0" y="0" width="`)
	s.num(width)
	s.body.WriteString(`" height="`)
	s.num(height)
	s.body.WriteString(`" fill="` + s.Background + `"/>` + "\n")
}

// DrawRect outlines r with rounded corners.
func (s *SVG) DrawRect(r eq.Rect) {
	s.body.WriteString(`<rect x="`)
	s.num(r.X)
	s.body.WriteString(`" y="`)
	s.num(r.Y)
	s.body.WriteString(`" width="`)
	s.num(r.Width)
	s.body.WriteString(`" height="`)
	s.num(r.Height)
	s.body.WriteString(`" rx="4" fill="none" stroke="` + s.Frame + `" stroke-width="1"/>` + "\n")
}

// StrokePath draws points as a polyline. Paths with fewer than two
// points are ignored.
func (s *SVG) StrokePath(points []eq.Point) {
	if len(points) < 2 {
		return
	}
	s.body.WriteString(`<polyline fill="none" stroke="` + s.Curve + `" stroke-width="`)
	s.num(s.StrokeWide)
	s.body.WriteString(`" points="`)
	for i, p := range points {
		if i > 0 {
			s.body.WriteByte(' ')
		}
		s.num(p.X)
		s.body.WriteByte(',')
		s.num(p.Y)
	}
	s.body.WriteString(`"/>` + "\n")
}

func (s *SVG) num(v float64) {
	var buf [32]byte
	s.body.Write(strconv.AppendFloat(buf[:0], v, 'f', 2, 64))
}

// WriteTo writes the complete document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var doc bytes.Buffer
	doc.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="`)
	doc.WriteString(strconv.FormatFloat(s.width, 'f', -1, 64))
	doc.WriteString(`" height="`)
	doc.WriteString(strconv.FormatFloat(s.height, 'f', -1, 64))
	doc.WriteString(`">` + "\n")
	doc.Write(s.body.Bytes())
	doc.WriteString("</svg>\n")
	return doc.WriteTo(w)
}

// Bytes returns the complete document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)
	return buf.Bytes()
}
