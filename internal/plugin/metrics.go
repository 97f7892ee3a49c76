package plugin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics for the processor and the editor.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	editorTicksTotal      prometheus.Counter
	editorRepaintsTotal   prometheus.Counter
	curveComputeSeconds   prometheus.Histogram
	processorRedesigns    prometheus.Counter
	processorBlocksTotal  prometheus.Counter
	processorSamplesTotal prometheus.Counter
}

// NewMetrics creates the metrics and registers them with registry.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.editorTicksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eq_editor_ticks_total",
		Help: "Total number of editor timer ticks",
	})

	m.editorRepaintsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eq_editor_repaints_total",
		Help: "Total number of response curve repaints triggered by parameter changes",
	})

	m.curveComputeSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "eq_editor_curve_compute_duration_seconds",
		Help:    "Time taken to sample the response curve",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 12), // 10us to ~20ms
	})

	m.processorRedesigns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eq_processor_redesigns_total",
		Help: "Total number of coefficient redesigns on the audio path",
	})

	m.processorBlocksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eq_processor_blocks_total",
		Help: "Total number of processed blocks",
	})

	m.processorSamplesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eq_processor_samples_total",
		Help: "Total number of processed samples across all channels",
	})
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.editorTicksTotal.Describe(ch)
	m.editorRepaintsTotal.Describe(ch)
	m.curveComputeSeconds.Describe(ch)
	m.processorRedesigns.Describe(ch)
	m.processorBlocksTotal.Describe(ch)
	m.processorSamplesTotal.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.editorTicksTotal.Collect(ch)
	m.editorRepaintsTotal.Collect(ch)
	m.curveComputeSeconds.Collect(ch)
	m.processorRedesigns.Collect(ch)
	m.processorBlocksTotal.Collect(ch)
	m.processorSamplesTotal.Collect(ch)
}

func (m *Metrics) recordTick() {
	if m == nil {
		return
	}
	m.editorTicksTotal.Inc()
}

func (m *Metrics) recordRepaint() {
	if m == nil {
		return
	}
	m.editorRepaintsTotal.Inc()
}

func (m *Metrics) recordCurveCompute(d time.Duration) {
	if m == nil {
		return
	}
	m.curveComputeSeconds.Observe(d.Seconds())
}

func (m *Metrics) recordRedesign() {
	if m == nil {
		return
	}
	m.processorRedesigns.Inc()
}

func (m *Metrics) recordBlock(samples int) {
	if m == nil {
		return
	}
	m.processorBlocksTotal.Inc()
	m.processorSamplesTotal.Add(float64(samples))
}
