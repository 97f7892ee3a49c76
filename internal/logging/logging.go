// Package logging builds the slog loggers used by the command-line tools.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is below debug and used for per-block diagnostics.
const LevelTrace = slog.Level(-8)

// ErrUnknownFormat is returned for formats other than text and json.
var ErrUnknownFormat = errors.New("logging: unknown format")

var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
}

// ParseLevel parses trace, debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "", "info":
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

// New returns a logger writing to w. format is "text" (the default) or
// "json".
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				l := a.Value.Any().(slog.Level)
				if name, ok := levelNames[l]; ok {
					a.Value = slog.StringValue(name)
				}
			}
			return a
		},
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
