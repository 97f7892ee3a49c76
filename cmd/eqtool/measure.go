package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/measure/response"
)

var errDeviation = errors.New("measured response deviates from analytic response")

func (a *app) measureCommand() *cobra.Command {
	var (
		fftSize   int
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Compare the FFT-measured response with the analytic one",
		Long: `Run an impulse through the configured chain, transform it and report how
far the measured magnitude strays from the closed-form response between
20 Hz and 20 kHz. Fails when the deviation exceeds --tolerance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := a.settings.EQParams()
			if err != nil {
				return err
			}
			rep, err := response.CompareAnalytic(params, a.settings.SampleRate, fftSize)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "sample rate\t%.0f Hz\n", rep.SampleRate)
			fmt.Fprintf(tw, "fft size\t%d\n", rep.FFTSize)
			fmt.Fprintf(tw, "bins compared\t%d\n", rep.Bins)
			fmt.Fprintf(tw, "max deviation\t%.6f dB\n", rep.MaxDeviationDB)
			fmt.Fprintf(tw, "mean deviation\t%.6f dB\n", rep.MeanDeviation)
			fmt.Fprintf(tw, "worst frequency\t%.1f Hz\n", rep.WorstFreqHz)
			if err := tw.Flush(); err != nil {
				return err
			}

			if rep.MaxDeviationDB > tolerance {
				return fmt.Errorf("%w: %.4f dB > %.4f dB", errDeviation, rep.MaxDeviationDB, tolerance)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&fftSize, "fft-size", 16384, "Impulse response length and FFT size (power of two)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0.5, "Maximum allowed deviation in dB")
	return cmd
}
