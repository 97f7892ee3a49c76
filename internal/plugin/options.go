package plugin

import (
	"io"
	"log/slog"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

// Default editor geometry.
const (
	DefaultWidth  = 600
	DefaultHeight = 400
)

type options struct {
	logger  *slog.Logger
	metrics *Metrics
	config  core.ProcessorConfig
	width   int
	height  int
	mapper  eq.Mapper
}

// Option configures a Processor or an Editor.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithProcessorOptions applies DSP processor options such as sample rate,
// block size and channel count.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(o *options) {
		for _, opt := range opts {
			if opt != nil {
				opt(&o.config)
			}
		}
	}
}

// WithSize sets the editor bounds in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width = width
			o.height = height
		}
	}
}

// WithMapper replaces the editor's frequency and dB scales.
func WithMapper(m eq.Mapper) Option {
	return func(o *options) {
		o.mapper = m
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		config: core.DefaultProcessorConfig(),
		width:  DefaultWidth,
		height: DefaultHeight,
		mapper: eq.DefaultMapper,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
