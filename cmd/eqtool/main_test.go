package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-eq/internal/wavio"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCurve_CSV(t *testing.T) {
	out, _, err := run(t, "--width", "120", "curve")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 121)
	assert.Equal(t, []string{"freq_hz", "magnitude_db", "x", "y"}, rows[0])
	assert.Equal(t, "20.0000", rows[1][0])
}

func TestCurve_JSONFollowsConfig(t *testing.T) {
	path := writeConfig(t, `
sample_rate: 48000
width: 200
params:
  peak_freq: 1000
  peak_gain_db: 12
  low_cut_bypassed: true
  high_cut_bypassed: true
`)
	out, _, err := run(t, "--config", path, "curve", "--format", "json")
	require.NoError(t, err)

	var points []curvePoint
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	require.Len(t, points, 200)

	best := points[0]
	for _, p := range points {
		if p.MagnitudeDB > best.MagnitudeDB {
			best = p
		}
	}
	assert.InDelta(t, 12, best.MagnitudeDB, 0.1)
	assert.InDelta(t, 1000, best.FreqHz, 40)
}

func TestCurve_YAMLWithEnvOverride(t *testing.T) {
	t.Setenv("EQ_PARAMS_PEAK_GAIN_DB", "-6")
	out, _, err := run(t, "--width", "50", "curve", "-f", "yaml")
	require.NoError(t, err)

	var points []curvePoint
	require.NoError(t, yaml.Unmarshal([]byte(out), &points))
	require.Len(t, points, 50)

	low := math.Inf(1)
	for _, p := range points {
		low = math.Min(low, p.MagnitudeDB)
	}
	assert.Less(t, low, -5.0)
}

func TestCurve_SVGToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.svg")
	_, _, err := run(t, "curve", "--format", "svg", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<polyline")
	assert.Contains(t, string(data), `width="600" height="400"`)
}

func TestCurve_LowSampleRateDefaults(t *testing.T) {
	out, _, err := run(t, "--sample-rate", "32000", "--width", "100", "curve")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 101)
}

func TestCurve_UnknownFormat(t *testing.T) {
	_, _, err := run(t, "curve", "--format", "png")
	require.ErrorIs(t, err, errUnknownFormat)
}

func TestInvalidConfigFails(t *testing.T) {
	path := writeConfig(t, "params:\n  low_cut_slope: 20\n")
	_, _, err := run(t, "--config", path, "curve")
	require.Error(t, err)
}

func TestMeasure(t *testing.T) {
	out, _, err := run(t, "--sample-rate", "48000", "measure", "--fft-size", "8192")
	require.NoError(t, err)
	assert.Contains(t, out, "max deviation")
	assert.Contains(t, out, "8192")

	_, _, err = run(t, "measure", "--fft-size", "64", "--tolerance", "0")
	require.Error(t, err)
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	samples := make([]float64, 4800)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*50*float64(i)/48000)
	}
	require.NoError(t, wavio.Write(in, &wavio.Audio{SampleRate: 48000, BitDepth: 16, Channels: [][]float64{samples, samples}}))

	cfg := writeConfig(t, "sample_rate: 48000\nparams:\n  low_cut_freq: 2000\n  low_cut_slope: 48\n")
	_, logs, err := run(t, "--config", cfg, "--log-format", "json", "process", in, out)
	require.NoError(t, err)
	assert.Contains(t, logs, `"msg":"processing file"`)
	assert.Contains(t, logs, `"msg":"processed file"`)

	got, err := wavio.Read(out)
	require.NoError(t, err)
	require.Len(t, got.Channels, 2)
	for _, v := range got.Channels[1][2400:] {
		require.Less(t, math.Abs(v), 0.001)
	}
}

func TestWatchRequiresConfig(t *testing.T) {
	_, _, err := run(t, "watch")
	require.ErrorIs(t, err, errNoConfig)
}
