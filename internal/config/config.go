// Package config loads equalizer settings from a YAML file, EQ_-prefixed
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// EnvPrefix is prepended to environment overrides, e.g.
// EQ_PARAMS_PEAK_FREQ=1000.
const EnvPrefix = "EQ"

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Settings is the complete application configuration.
type Settings struct {
	SampleRate float64      `mapstructure:"sample_rate" yaml:"sample_rate"`
	Width      int          `mapstructure:"width" yaml:"width"`
	Height     int          `mapstructure:"height" yaml:"height"`
	Params     ParamsConfig `mapstructure:"params" yaml:"params"`
	Log        LogConfig    `mapstructure:"log" yaml:"log"`
}

// ParamsConfig mirrors eq.Params in file form. Slopes are given in
// dB/oct (12, 24, 36 or 48).
type ParamsConfig struct {
	PeakFreq        float64 `mapstructure:"peak_freq" yaml:"peak_freq"`
	PeakGainDB      float64 `mapstructure:"peak_gain_db" yaml:"peak_gain_db"`
	PeakQ           float64 `mapstructure:"peak_q" yaml:"peak_q"`
	LowCutFreq      float64 `mapstructure:"low_cut_freq" yaml:"low_cut_freq"`
	HighCutFreq     float64 `mapstructure:"high_cut_freq" yaml:"high_cut_freq"`
	LowCutSlope     int     `mapstructure:"low_cut_slope" yaml:"low_cut_slope"`
	HighCutSlope    int     `mapstructure:"high_cut_slope" yaml:"high_cut_slope"`
	LowCutBypassed  bool    `mapstructure:"low_cut_bypassed" yaml:"low_cut_bypassed"`
	PeakBypassed    bool    `mapstructure:"peak_bypassed" yaml:"peak_bypassed"`
	HighCutBypassed bool    `mapstructure:"high_cut_bypassed" yaml:"high_cut_bypassed"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// FromParams converts p to its file form.
func FromParams(p eq.Params) ParamsConfig {
	return ParamsConfig{
		PeakFreq:        p.PeakFreq,
		PeakGainDB:      p.PeakGainDB,
		PeakQ:           p.PeakQ,
		LowCutFreq:      p.LowCutFreq,
		HighCutFreq:     p.HighCutFreq,
		LowCutSlope:     p.LowCutSlope.DBPerOctave(),
		HighCutSlope:    p.HighCutSlope.DBPerOctave(),
		LowCutBypassed:  p.LowCutBypassed,
		PeakBypassed:    p.PeakBypassed,
		HighCutBypassed: p.HighCutBypassed,
	}
}

// EQParams converts c to an eq.Params snapshot.
func (c ParamsConfig) EQParams() (eq.Params, error) {
	low, err := eq.SlopeFromDBPerOctave(c.LowCutSlope)
	if err != nil {
		return eq.Params{}, fmt.Errorf("%w: low_cut_slope: %w", ErrInvalidSettings, err)
	}
	high, err := eq.SlopeFromDBPerOctave(c.HighCutSlope)
	if err != nil {
		return eq.Params{}, fmt.Errorf("%w: high_cut_slope: %w", ErrInvalidSettings, err)
	}
	return eq.Params{
		PeakFreq:        c.PeakFreq,
		PeakGainDB:      c.PeakGainDB,
		PeakQ:           c.PeakQ,
		LowCutFreq:      c.LowCutFreq,
		HighCutFreq:     c.HighCutFreq,
		LowCutSlope:     low,
		HighCutSlope:    high,
		LowCutBypassed:  c.LowCutBypassed,
		PeakBypassed:    c.PeakBypassed,
		HighCutBypassed: c.HighCutBypassed,
	}, nil
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		SampleRate: 44100,
		Width:      600,
		Height:     400,
		Params:     FromParams(eq.DefaultParams()),
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks geometry, sample rate and parameters.
func (s *Settings) Validate() error {
	if !(s.SampleRate > 0) {
		return fmt.Errorf("%w: sample_rate %v must be positive", ErrInvalidSettings, s.SampleRate)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: editor size %dx%d", ErrInvalidSettings, s.Width, s.Height)
	}
	p, err := s.Params.EQParams()
	if err != nil {
		return err
	}
	if err := p.Validate(s.SampleRate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// fitHighCut lowers a high cut left at the top of the range to the
// highest frequency the sample rate supports. Other values are kept and
// validated as given.
func (s *Settings) fitHighCut() {
	if s.Params.HighCutFreq == eq.MaxFreq && s.SampleRate > 0 {
		s.Params.HighCutFreq = eq.MaxFrequency(s.SampleRate)
	}
}

// EQParams returns the validated parameter snapshot.
func (s *Settings) EQParams() (eq.Params, error) {
	if err := s.Validate(); err != nil {
		return eq.Params{}, err
	}
	return s.Params.EQParams()
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"sample-rate": "sample_rate",
	"width":       "width",
	"height":      "height",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// New returns a viper instance with defaults and environment overrides
// set up but no file read.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("sample_rate", d.SampleRate)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("params.peak_freq", d.Params.PeakFreq)
	v.SetDefault("params.peak_gain_db", d.Params.PeakGainDB)
	v.SetDefault("params.peak_q", d.Params.PeakQ)
	v.SetDefault("params.low_cut_freq", d.Params.LowCutFreq)
	v.SetDefault("params.high_cut_freq", d.Params.HighCutFreq)
	v.SetDefault("params.low_cut_slope", d.Params.LowCutSlope)
	v.SetDefault("params.high_cut_slope", d.Params.HighCutSlope)
	v.SetDefault("params.low_cut_bypassed", d.Params.LowCutBypassed)
	v.SetDefault("params.peak_bypassed", d.Params.PeakBypassed)
	v.SetDefault("params.high_cut_bypassed", d.Params.HighCutBypassed)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads path (if non-empty), applies environment overrides and the
// flags that were set on the command line, and validates the result.
func Load(path string, flags *pflag.FlagSet) (*Settings, *viper.Viper, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}
	s, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

// Decode unmarshals and validates the current state of v.
func Decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	s.fitHighCut()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Watch re-decodes the configuration every time the file behind v
// changes and passes valid settings to fn. Invalid edits are logged and
// skipped. v must have been loaded from a file.
func Watch(v *viper.Viper, logger *slog.Logger, fn func(*Settings)) {
	v.OnConfigChange(reloadHandler(v, logger, fn))
	v.WatchConfig()
}

func reloadHandler(v *viper.Viper, logger *slog.Logger, fn func(*Settings)) func(fsnotify.Event) {
	return func(e fsnotify.Event) {
		s, err := Decode(v)
		if err != nil {
			logger.Warn("ignoring invalid configuration change", "file", e.Name, "error", err)
			return
		}
		logger.Info("configuration reloaded", "file", e.Name, "op", e.Op.String())
		fn(s)
	}
}
