// Package wavio reads and writes PCM WAV files as planar float64 audio
// and filters them through the equalizer.
package wavio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/internal/logging"
	"github.com/cwbudde/algo-eq/internal/plugin"
	"github.com/cwbudde/algo-eq/stats/level"
)

const pcmFormat = 1

var (
	// ErrInvalidFile is returned for input that is not a WAV file.
	ErrInvalidFile = errors.New("wavio: invalid WAV file")
	// ErrBitDepth is returned for bit depths other than 16, 24 and 32.
	ErrBitDepth = errors.New("wavio: unsupported bit depth")
)

// Audio is planar audio with samples normalized to [-1, 1].
type Audio struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// Frames returns the number of samples per channel.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
}

// Decode reads a complete WAV stream.
func Decode(r io.ReadSeeker) (*Audio, error) {
	decoder := wav.NewDecoder(r)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, ErrInvalidFile
	}

	bitDepth := int(decoder.BitDepth)
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: read PCM: %w", err)
	}

	numChans := int(decoder.NumChans)
	if numChans <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidFile, numChans)
	}
	frames := len(buf.Data) / numChans

	a := &Audio{
		SampleRate: int(decoder.SampleRate),
		BitDepth:   bitDepth,
		Channels:   make([][]float64, numChans),
	}
	for ch := range a.Channels {
		a.Channels[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range numChans {
			a.Channels[ch][i] = float64(buf.Data[i*numChans+ch]) / scale
		}
	}
	return a, nil
}

// Encode writes a as PCM. Samples outside [-1, 1] are clipped.
func Encode(w io.WriteSeeker, a *Audio) error {
	scale, err := fullScale(a.BitDepth)
	if err != nil {
		return err
	}
	numChans := len(a.Channels)
	if numChans == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidFile)
	}

	frames := a.Frames()
	data := make([]int, frames*numChans)
	maxInt := scale - 1
	for i := range frames {
		for ch := range numChans {
			v := core.Clamp(math.Round(a.Channels[ch][i]*scale), -scale, maxInt)
			data[i*numChans+ch] = int(v)
		}
	}

	enc := wav.NewEncoder(w, a.SampleRate, a.BitDepth, numChans, pcmFormat)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: a.SampleRate, NumChannels: numChans},
		SourceBitDepth: a.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write PCM: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}
	return nil
}

// Read decodes the WAV file at path.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Write encodes a into a new file at path.
func Write(path string, a *Audio) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, a)
}

// Process filters every channel of a in place. Channels run concurrently,
// each through its own single-channel Processor fed from store.
func Process(ctx context.Context, a *Audio, store *plugin.ParamStore, blockSize int, logger *slog.Logger) error {
	if blockSize <= 0 {
		blockSize = core.DefaultProcessorConfig().BlockSize
	}
	if logger == nil {
		logger = logging.Discard()
	}
	sampleRate := float64(a.SampleRate)

	g, ctx := errgroup.WithContext(ctx)
	for ch, samples := range a.Channels {
		g.Go(func() error {
			proc := plugin.NewProcessor(store,
				plugin.WithLogger(logger.With("channel", ch)),
				plugin.WithProcessorOptions(core.WithBlockSize(blockSize), core.WithChannels(1)))
			if err := proc.Prepare(sampleRate, 1); err != nil {
				return err
			}
			for start := 0; start < len(samples); start += blockSize {
				if err := ctx.Err(); err != nil {
					return err
				}
				end := min(start+blockSize, len(samples))
				if err := proc.ProcessBlock(samples[start:end], sampleRate); err != nil {
					return fmt.Errorf("channel %d: %w", ch, err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// ProcessFile reads in, filters it and writes the result to out with the
// same format.
func ProcessFile(ctx context.Context, in, out string, store *plugin.ParamStore, blockSize int, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	a, err := Read(in)
	if err != nil {
		return err
	}
	logger.Info("processing file",
		"input", in,
		"sample_rate", a.SampleRate,
		"channels", len(a.Channels),
		"frames", a.Frames())

	before := level.Measure(a.Channels)
	if err := Process(ctx, a, store, blockSize, logger); err != nil {
		return err
	}
	after := level.Measure(a.Channels)
	logger.Info("processed file",
		"output", out,
		"peak_in_db", before.PeakDB,
		"peak_out_db", after.PeakDB,
		"rms_gain_db", level.GainDB(before, after))

	return Write(out, a)
}
