package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/internal/wavio"
)

func (a *app) processCommand() *cobra.Command {
	var blockSize int

	cmd := &cobra.Command{
		Use:   "process <in.wav> <out.wav>",
		Short: "Filter a WAV file through the equalizer",
		Long: `Read a 16, 24 or 32-bit PCM WAV file, run every channel through its own
filter chain in blocks, and write the result with the same format.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.paramStore()
			if err != nil {
				return err
			}
			if err := wavio.ProcessFile(cmd.Context(), args[0], args[1], store, blockSize, a.logger); err != nil {
				return err
			}
			a.logger.Info("wrote output", "path", args[1])
			return nil
		},
	}
	cmd.Flags().IntVarP(&blockSize, "block-size", "b", 512, "Samples per processing block")
	return cmd
}
