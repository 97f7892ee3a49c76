package plugin

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// DefaultTickInterval polls the change flag at 60 Hz.
const DefaultTickInterval = time.Second / 60

// Surface receives the editor's drawing commands.
type Surface interface {
	Clear(width, height float64)
	DrawRect(r eq.Rect)
	StrokePath(points []eq.Point)
}

// Editor draws the magnitude response of the current parameters. It
// listens to the ParamStore, but only sets a change flag from the
// notifier; the curve is recomputed on the next Tick.
//
// ParameterChanged may be called from any goroutine. Every other method
// belongs to the UI goroutine.
type Editor struct {
	store   *ParamStore
	surface Surface
	logger  *slog.Logger
	metrics *Metrics

	chain  *eq.Chain
	flag   eq.ChangeFlag
	mapper eq.Mapper

	width, height int
	sampleRate    float64
	curve         []eq.Point

	unsubscribe func()
	closeOnce   sync.Once
}

// NewEditor builds the visualization chain from the current snapshot,
// paints once and subscribes to parameter changes. The sample rate
// comes from WithProcessorOptions(core.WithSampleRate(...)).
func NewEditor(store *ParamStore, surface Surface, opts ...Option) *Editor {
	o := applyOptions(opts)
	e := &Editor{
		store:      store,
		surface:    surface,
		logger:     o.logger,
		metrics:    o.metrics,
		chain:      eq.NewChain(),
		mapper:     o.mapper,
		width:      o.width,
		height:     o.height,
		sampleRate: o.config.SampleRate,
	}
	e.chain.Update(store.Load().Clamp(e.sampleRate), e.sampleRate)
	e.Paint()
	e.unsubscribe = store.OnChange(func(eq.Params) { e.ParameterChanged() })
	return e
}

// ParameterChanged marks the response curve stale.
func (e *Editor) ParameterChanged() {
	e.flag.Set()
}

// Tick consumes a pending change, rebuilds the visualization chain and
// repaints. It reports whether a repaint happened.
func (e *Editor) Tick() bool {
	e.metrics.recordTick()
	if !e.flag.CompareAndClear() {
		return false
	}

	e.chain.Update(e.store.Load().Clamp(e.sampleRate), e.sampleRate)
	e.Paint()
	e.metrics.recordRepaint()
	e.logger.Debug("response curve repainted", "points", len(e.curve))
	return true
}

// Run calls Tick every interval until ctx is done. A non-positive
// interval uses DefaultTickInterval.
func (e *Editor) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.Info("editor running", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Tick()
		}
	}
}

// SetSampleRate changes the rate used for the response curve and marks
// it stale.
func (e *Editor) SetSampleRate(sampleRate float64) {
	if sampleRate > 0 && sampleRate != e.sampleRate {
		e.sampleRate = sampleRate
		e.ParameterChanged()
	}
}

// SetSize changes the editor bounds and repaints immediately.
func (e *Editor) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.width, e.height = width, height
	e.Paint()
}

// Bounds returns the full editor area.
func (e *Editor) Bounds() eq.Rect {
	return eq.Rect{Width: float64(e.width), Height: float64(e.height)}
}

// ResponseArea returns the top third of the editor bounds, rounded down
// to whole pixels.
func (e *Editor) ResponseArea() eq.Rect {
	b := e.Bounds()
	b.Height = math.Floor(b.Height * 0.333)
	return b
}

// ComputeResponseCurve samples the visualization chain at pixelWidth
// log-spaced frequencies and maps each dB value between top and bottom.
// A sampleRate other than the editor's is served from a chain designed
// at that rate; the visualization chain is left alone.
func (e *Editor) ComputeResponseCurve(pixelWidth int, top, bottom, sampleRate float64) []eq.Point {
	if !(sampleRate > 0) {
		return nil
	}
	start := time.Now()
	chain := e.chain
	if sampleRate != e.sampleRate {
		chain = eq.NewChain()
		chain.Update(e.store.Load().Clamp(sampleRate), sampleRate)
	}
	area := eq.Rect{
		X:      e.ResponseArea().Left(),
		Y:      top,
		Width:  float64(pixelWidth),
		Height: bottom - top,
	}
	points := eq.ResponseCurve(chain, sampleRate, area, e.mapper)
	e.metrics.recordCurveCompute(time.Since(start))
	return points
}

// Paint redraws the background, the response area outline and the curve.
func (e *Editor) Paint() {
	area := e.ResponseArea()
	e.curve = e.ComputeResponseCurve(int(area.Width), area.Top(), area.Bottom(), e.sampleRate)

	e.surface.Clear(float64(e.width), float64(e.height))
	e.surface.DrawRect(area)
	e.surface.StrokePath(e.curve)
}

// Curve returns the most recently painted curve.
func (e *Editor) Curve() []eq.Point {
	return e.curve
}

// Chain returns the visualization chain.
func (e *Editor) Chain() *eq.Chain {
	return e.chain
}

// Close unsubscribes from the parameter store.
func (e *Editor) Close() {
	e.closeOnce.Do(e.unsubscribe)
}
