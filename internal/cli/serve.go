package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-parser/internal/api"
	"github.com/insightdelivered/statement-parser/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Runs the HTTP API until interrupted.

  POST /parse    multipart upload in field "file"
  GET  /health   liveness
  GET  /metrics  Prometheus metrics (METRICS_ENABLED)

Configuration is read from the environment and an optional .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ext, err := buildExtractor(cfg.OCR, logger)
	if err != nil {
		return err
	}

	opts := api.Options{
		Extractor: ext,
		Logger:    logger,
		BodyLimit: cfg.Server.BodyLimit(),
		StaticDir: cfg.Server.StaticDir,
	}
	if cfg.Server.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts.Metrics = metrics.New(reg)
		opts.Gatherer = reg
	}
	app := api.NewApp(opts)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"addr", cfg.Server.Addr(),
			"ocr_enabled", cfg.OCR.Enabled,
			"ocr_engine", cfg.OCR.Engine,
			"rasterizer", cfg.OCR.Rasterizer,
		)
		errCh <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
