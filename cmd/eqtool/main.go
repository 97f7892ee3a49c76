// Command eqtool renders, measures and applies a three-position
// parametric equalizer (low cut, peak, high cut).
//
// Usage:
//
//	eqtool [global flags] <command> [flags]
//
// Examples:
//
//	eqtool curve --format csv
//	eqtool --config eq.yaml curve --format svg -o curve.svg
//	eqtool --config eq.yaml process in.wav out.wav
//	eqtool measure --fft-size 16384
//	eqtool --config eq.yaml watch -o curve.svg
//
// Settings come from the YAML file given with --config, EQ_-prefixed
// environment variables (EQ_PARAMS_PEAK_FREQ=1000) and flags, in
// increasing order of precedence.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
