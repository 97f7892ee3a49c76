package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/internal/config"
	"github.com/cwbudde/algo-eq/internal/logging"
	"github.com/cwbudde/algo-eq/internal/plugin"
)

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	configPath string

	settings *config.Settings
	viper    *viper.Viper
	logger   *slog.Logger

	out    io.Writer
	errOut io.Writer
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	def := config.Default()

	root := &cobra.Command{
		Use:          "eqtool",
		Short:        "Parametric EQ response, measurement and processing tool",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a YAML settings file")
	flags.Float64("sample-rate", def.SampleRate, "Sample rate in Hz used for designs and curves")
	flags.Int("width", def.Width, "Editor width in pixels")
	flags.Int("height", def.Height, "Editor height in pixels")
	flags.String("log-level", def.Log.Level, "Log level: trace, debug, info, warn, error")
	flags.String("log-format", def.Log.Format, "Log format: text or json")

	root.AddCommand(
		a.curveCommand(),
		a.processCommand(),
		a.measureCommand(),
		a.watchCommand(),
	)
	return root
}

// initialize loads settings with flag overrides and sets up logging.
func (a *app) initialize(cmd *cobra.Command) error {
	s, v, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(a.errOut, s.Log.Level, s.Log.Format)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	a.settings, a.viper, a.logger = s, v, logger
	a.logger.Debug("settings loaded",
		"config", a.configPath,
		"sample_rate", s.SampleRate,
		"size", fmt.Sprintf("%dx%d", s.Width, s.Height))
	return nil
}

// paramStore returns a store seeded with the configured parameters.
func (a *app) paramStore() (*plugin.ParamStore, error) {
	p, err := a.settings.EQParams()
	if err != nil {
		return nil, err
	}
	return plugin.NewParamStore(p), nil
}

func (a *app) editorOptions(extra ...plugin.Option) []plugin.Option {
	opts := []plugin.Option{
		plugin.WithLogger(a.logger),
		plugin.WithSize(a.settings.Width, a.settings.Height),
		plugin.WithProcessorOptions(core.WithSampleRate(a.settings.SampleRate)),
	}
	return append(opts, extra...)
}
