package render

import (
	"sync"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// OpKind names a drawing command.
type OpKind string

// Recorded drawing commands.
const (
	OpClear  OpKind = "clear"
	OpRect   OpKind = "rect"
	OpStroke OpKind = "stroke"
)

// Op is one recorded drawing command.
type Op struct {
	Kind   OpKind
	Rect   eq.Rect
	Points []eq.Point
}

// Recorder is a surface that stores every command it receives.
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

// Clear records a background fill of width x height.
func (r *Recorder) Clear(width, height float64) {
	r.record(Op{Kind: OpClear, Rect: eq.Rect{Width: width, Height: height}})
}

// DrawRect records an outlined rectangle.
func (r *Recorder) DrawRect(rect eq.Rect) {
	r.record(Op{Kind: OpRect, Rect: rect})
}

// StrokePath records a polyline. The points are copied.
func (r *Recorder) StrokePath(points []eq.Point) {
	r.record(Op{Kind: OpStroke, Points: append([]eq.Point(nil), points...)})
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

// Ops returns a copy of the recorded commands.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Count returns how many commands of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// LastPath returns the points of the most recent stroke, or nil.
func (r *Recorder) LastPath() []eq.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.ops) - 1; i >= 0; i-- {
		if r.ops[i].Kind == OpStroke {
			return r.ops[i].Points
		}
	}
	return nil
}

// Reset drops all recorded commands.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}
