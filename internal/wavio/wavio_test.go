package wavio

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/plugin"
	"github.com/cwbudde/algo-eq/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	for _, depth := range []int{16, 24, 32} {
		a := &Audio{
			SampleRate: 48000,
			BitDepth:   depth,
			Channels: [][]float64{
				testutil.Sine(440, 48000, 0.5, 1000),
				testutil.Sine(1000, 48000, 0.25, 1000),
			},
		}
		path := filepath.Join(t.TempDir(), "rt.wav")
		require.NoError(t, Write(path, a))

		got, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, 48000, got.SampleRate)
		assert.Equal(t, depth, got.BitDepth)
		require.Len(t, got.Channels, 2)
		require.Equal(t, 1000, got.Frames())

		tol := 1.5 / math.Ldexp(1, depth-1)
		for ch := range a.Channels {
			for i := range a.Channels[ch] {
				require.InDelta(t, a.Channels[ch][i], got.Channels[ch][i], tol, "depth %d ch %d i %d", depth, ch, i)
			}
		}
	}
}

func TestEncode_Clips(t *testing.T) {
	a := &Audio{SampleRate: 8000, BitDepth: 16, Channels: [][]float64{{2, -2, 0}}}
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, Write(path, a))

	got, err := Read(path)
	require.NoError(t, err)
	assert.InDelta(t, 32767.0/32768, got.Channels[0][0], 1e-12)
	assert.InDelta(t, -1, got.Channels[0][1], 1e-12)
}

func TestEncode_Errors(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	require.NoError(t, err)
	defer f.Close()

	require.ErrorIs(t, Encode(f, &Audio{SampleRate: 8000, BitDepth: 12, Channels: [][]float64{{0}}}), ErrBitDepth)
	require.ErrorIs(t, Encode(f, &Audio{SampleRate: 8000, BitDepth: 16}), ErrInvalidFile)
}

func TestDecode_InvalidInput(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not a RIFF file")))
	require.ErrorIs(t, err, ErrInvalidFile)

	_, err = Read(filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}

func TestProcess_AppliesLowCutPerChannel(t *testing.T) {
	params := eq.DefaultParams()
	params.LowCutFreq = 1000
	params.LowCutSlope = eq.Slope48
	store := plugin.NewParamStore(params)

	a := &Audio{
		SampleRate: 48000,
		BitDepth:   16,
		Channels: [][]float64{
			testutil.Sine(100, 48000, 0.5, 48000),
			testutil.Sine(5000, 48000, 0.5, 48000),
		},
	}
	require.NoError(t, Process(context.Background(), a, store, 256, nil))

	assert.Less(t, testutil.PeakAbs(a.Channels[0][24000:]), 0.001, "100 Hz should be removed")
	assert.InDelta(t, 0.5, testutil.PeakAbs(a.Channels[1][24000:]), 0.01, "5 kHz should pass")
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &Audio{SampleRate: 48000, BitDepth: 16, Channels: [][]float64{make([]float64, 1024)}}
	err := Process(ctx, a, plugin.NewParamStore(eq.DefaultParams()), 128, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	require.NoError(t, Write(in, &Audio{
		SampleRate: 44100,
		BitDepth:   24,
		Channels:   [][]float64{testutil.Sine(1000, 44100, 0.25, 44100)},
	}))

	params := eq.DefaultParams()
	params.PeakFreq = 1000
	params.PeakGainDB = 6
	require.NoError(t, ProcessFile(context.Background(), in, out, plugin.NewParamStore(params), 512, nil))

	got, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, 44100, got.SampleRate)
	assert.Equal(t, 24, got.BitDepth)
	assert.Equal(t, 44100, got.Frames())
	assert.InDelta(t, 0.25*math.Pow(10, 6.0/20), testutil.PeakAbs(got.Channels[0][22050:]), 0.005)
}
