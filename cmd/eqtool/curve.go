package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/plugin"
	"github.com/cwbudde/algo-eq/internal/render"
)

var errUnknownFormat = errors.New("unknown output format")

// curvePoint is one pixel column of the response curve.
type curvePoint struct {
	FreqHz      float64 `json:"freqHz" yaml:"freq_hz"`
	MagnitudeDB float64 `json:"magnitudeDb" yaml:"magnitude_db"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
}

func (a *app) curveCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Print or save the magnitude response curve",
		Long: `Sample the configured equalizer at one log-spaced frequency per pixel
column of the response area and write the result as csv, json, yaml or svg.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := a.out
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return a.writeCurve(w, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv, json, yaml, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func (a *app) writeCurve(w io.Writer, format string) error {
	store, err := a.paramStore()
	if err != nil {
		return err
	}
	svg := render.NewSVG()
	ed := plugin.NewEditor(store, svg, a.editorOptions()...)
	defer ed.Close()

	if format == "svg" {
		_, err := svg.WriteTo(w)
		return err
	}

	curve := ed.Curve()
	freqs := eq.DefaultMapper.Frequencies(len(curve))
	mags := ed.Chain().MagnitudesDB(nil, freqs, a.settings.SampleRate)
	points := make([]curvePoint, len(curve))
	for i, pt := range curve {
		points[i] = curvePoint{FreqHz: freqs[i], MagnitudeDB: mags[i], X: pt.X, Y: pt.Y}
	}

	switch format {
	case "csv":
		return writeCurveCSV(w, points)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(points)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

func writeCurveCSV(w io.Writer, points []curvePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"freq_hz", "magnitude_db", "x", "y"}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	for _, p := range points {
		if err := cw.Write([]string{f(p.FreqHz), f(p.MagnitudeDB), f(p.X), f(p.Y)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
