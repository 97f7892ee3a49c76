package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

func TestRecorder_RecordsCommands(t *testing.T) {
	var r Recorder
	pts := []eq.Point{{X: 0, Y: 1}, {X: 1, Y: 2}}

	r.Clear(600, 400)
	r.DrawRect(eq.Rect{Width: 600, Height: 133})
	r.StrokePath(pts)
	pts[0].Y = 99

	ops := r.Ops()
	require.Len(t, ops, 3)
	assert.Equal(t, OpClear, ops[0].Kind)
	assert.Equal(t, 600.0, ops[0].Rect.Width)
	assert.Equal(t, OpRect, ops[1].Kind)
	assert.Equal(t, 1, r.Count(OpStroke))
	assert.Equal(t, 1.0, r.LastPath()[0].Y, "recorded path must not alias the caller's slice")

	r.Reset()
	assert.Empty(t, r.Ops())
	assert.Nil(t, r.LastPath())
}

func TestSVG_Document(t *testing.T) {
	s := NewSVG()
	s.Clear(600, 400)
	s.DrawRect(eq.Rect{X: 0, Y: 0, Width: 600, Height: 133})
	s.StrokePath([]eq.Point{{X: 0, Y: 66}, {X: 1, Y: 65.5}, {X: 2, Y: 65.25}})

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	doc := buf.String()
	assert.True(t, strings.HasPrefix(doc, `<svg xmlns="http://www.w3.org/2000/svg" width="600" height="400">`))
	assert.Contains(t, doc, `fill="#000000"`)
	assert.Contains(t, doc, `stroke="#ffa500"`)
	assert.Contains(t, doc, `points="0.00,66.00 1.00,65.50 2.00,65.25"`)
	assert.True(t, strings.HasSuffix(doc, "</svg>\n"))
	assert.Equal(t, buf.Bytes(), s.Bytes())
}

func TestSVG_ClearStartsOver(t *testing.T) {
	s := NewSVG()
	s.Clear(10, 10)
	s.StrokePath([]eq.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	s.Clear(20, 10)

	doc := string(s.Bytes())
	assert.NotContains(t, doc, "polyline")
	assert.Contains(t, doc, `width="20"`)
}

func TestSVG_ShortPathIgnored(t *testing.T) {
	s := NewSVG()
	s.Clear(10, 10)
	s.StrokePath([]eq.Point{{X: 1, Y: 1}})
	assert.NotContains(t, string(s.Bytes()), "polyline")
}
