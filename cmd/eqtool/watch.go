package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/config"
	"github.com/cwbudde/algo-eq/internal/plugin"
	"github.com/cwbudde/algo-eq/internal/render"
)

var errNoConfig = errors.New("watch requires --config")

// svgFile rewrites the SVG document on disk after every painted curve.
type svgFile struct {
	*render.SVG
	path   string
	logger *slog.Logger
}

func (f *svgFile) StrokePath(points []eq.Point) {
	f.SVG.StrokePath(points)
	if err := os.WriteFile(f.path, f.Bytes(), 0o644); err != nil {
		f.logger.Error("write svg", "path", f.path, "error", err)
		return
	}
	f.logger.Debug("svg written", "path", f.path, "points", len(points))
}

func (a *app) watchCommand() *cobra.Command {
	var (
		output      string
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the response curve whenever the config file changes",
		Long: `Watch the file given with --config. Each valid edit is published as a new
parameter snapshot; the editor picks it up on its next tick and rewrites
the SVG file. Invalid edits are logged and ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.configPath == "" {
				return errNoConfig
			}
			store, err := a.paramStore()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			metrics, err := plugin.NewMetrics(reg)
			if err != nil {
				return err
			}

			surface := &svgFile{SVG: render.NewSVG(), path: output, logger: a.logger}
			ed := plugin.NewEditor(store, surface, a.editorOptions(plugin.WithMetrics(metrics))...)
			defer ed.Close()

			config.Watch(a.viper, a.logger, func(s *config.Settings) {
				p, err := s.EQParams()
				if err != nil {
					a.logger.Warn("ignoring parameters", "error", err)
					return
				}
				store.Store(p)
			})

			ctx := cmd.Context()
			if metricsAddr != "" {
				stop := serveMetrics(ctx, metricsAddr, reg, a.logger)
				defer stop()
			}

			a.logger.Info("watching", "config", a.configPath, "output", output)
			err = ed.Run(ctx, interval)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "curve.svg", "SVG file to rewrite on every change")
	cmd.Flags().DurationVar(&interval, "interval", plugin.DefaultTickInterval, "Editor tick interval")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *slog.Logger) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
