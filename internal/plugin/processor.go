package plugin

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

var (
	// ErrNotPrepared is returned when audio arrives before Prepare.
	ErrNotPrepared = errors.New("plugin: processor not prepared")
	// ErrChannelCount is returned when more channels arrive than were
	// prepared.
	ErrChannelCount = errors.New("plugin: channel count exceeds prepared channels")
	// ErrSampleRate is returned for non-positive sample rates.
	ErrSampleRate = errors.New("plugin: invalid sample rate")
)

// Processor filters audio through one eq.Chain per channel. Coefficients
// are redesigned at block boundaries, and only when the parameter
// snapshot or the sample rate differs from the last design.
//
// All methods except Redesigns must run on the audio goroutine.
type Processor struct {
	store   *ParamStore
	logger  *slog.Logger
	metrics *Metrics
	opts    options

	chains     []*eq.Chain
	designed   eq.Params
	sampleRate float64
	redesigns  int
}

// NewProcessor returns an unprepared processor reading from store.
func NewProcessor(store *ParamStore, opts ...Option) *Processor {
	o := applyOptions(opts)
	return &Processor{
		store:   store,
		logger:  o.logger,
		metrics: o.metrics,
		opts:    o,
	}
}

// Prepare allocates one chain per channel, designs them for sampleRate
// and clears all filter state. A channels value <= 0 falls back to the
// configured channel count.
func (p *Processor) Prepare(sampleRate float64, channels int) error {
	if !(sampleRate > 0) {
		return fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}
	if channels <= 0 {
		channels = p.opts.config.Channels
	}

	p.chains = make([]*eq.Chain, channels)
	for i := range p.chains {
		p.chains[i] = eq.NewChain()
	}
	p.redesigns = 0
	p.redesign(p.store.Load(), sampleRate)

	p.logger.Info("processor prepared",
		"sample_rate", sampleRate,
		"channels", channels,
		"block_size", p.opts.config.BlockSize)
	return nil
}

// Prepared reports whether Prepare has run.
func (p *Processor) Prepared() bool {
	return p.chains != nil
}

// ProcessBlock filters a mono block in place using the first channel's
// chain.
func (p *Processor) ProcessBlock(samples []float64, sampleRate float64) error {
	if p.chains == nil {
		return ErrNotPrepared
	}
	if err := p.refresh(sampleRate); err != nil {
		return err
	}
	p.chains[0].ProcessBlock(samples)
	p.metrics.recordBlock(len(samples))
	return nil
}

// ProcessChannels filters each channel in place through its own chain.
func (p *Processor) ProcessChannels(channels [][]float64, sampleRate float64) error {
	if p.chains == nil {
		return ErrNotPrepared
	}
	if len(channels) > len(p.chains) {
		return fmt.Errorf("%w: got %d, prepared %d", ErrChannelCount, len(channels), len(p.chains))
	}
	if err := p.refresh(sampleRate); err != nil {
		return err
	}
	total := 0
	for i, ch := range channels {
		p.chains[i].ProcessBlock(ch)
		total += len(ch)
	}
	p.metrics.recordBlock(total)
	return nil
}

// Reset clears the filter state of every channel.
func (p *Processor) Reset() {
	for _, c := range p.chains {
		c.Reset()
	}
}

// Chain returns the chain of channel ch, or nil if it does not exist.
func (p *Processor) Chain(ch int) *eq.Chain {
	if ch < 0 || ch >= len(p.chains) {
		return nil
	}
	return p.chains[ch]
}

// Redesigns returns how many times coefficients were rebuilt since
// Prepare, including the initial design.
func (p *Processor) Redesigns() int {
	return p.redesigns
}

func (p *Processor) refresh(sampleRate float64) error {
	if !(sampleRate > 0) {
		return fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}
	params := p.store.Load()
	if params == p.designed && sampleRate == p.sampleRate {
		return nil
	}
	if sampleRate != p.sampleRate {
		p.Reset()
	}
	p.redesign(params, sampleRate)
	return nil
}

func (p *Processor) redesign(params eq.Params, sampleRate float64) {
	clamped := params.Clamp(sampleRate)
	for _, c := range p.chains {
		c.Update(clamped, sampleRate)
	}
	p.designed = params
	p.sampleRate = sampleRate
	p.redesigns++
	p.metrics.recordRedesign()
}
