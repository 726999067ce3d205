// Command pipeline rebuilds every derived warehouse layer from the raw
// observation store: staging, quality, enrichment, daily aggregates, the
// ML feature table, and both dimensions, plus an optional Parquet export
// of the marts layer.
//
// By default it runs once and exits. With -serve it stays up afterwards,
// exposing /healthz, /readyz, /status, and /metrics until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/monsoonlab/weather-marts-etl/internal/adapter/http"
	"github.com/monsoonlab/weather-marts-etl/internal/adapter/parquet"
	"github.com/monsoonlab/weather-marts-etl/internal/adapter/warehouse"
	"github.com/monsoonlab/weather-marts-etl/internal/config"
	"github.com/monsoonlab/weather-marts-etl/internal/observability"
	"github.com/monsoonlab/weather-marts-etl/internal/pipeline"
)

func main() {
	serve := flag.Bool("serve", false, "keep serving HTTP endpoints after the run completes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, *serve); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, serve bool) error {
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store, err := warehouse.Open(cfg)
	if err != nil {
		logger.Error("failed to open warehouse", "error", err)
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("warehouse close error", "error", err)
		}
	}()

	// Parquet export is feature-flagged via EXPORT_DIR.
	var exporter pipeline.Exporter
	if cfg.ExportDir != "" {
		pq, err := parquet.NewExporter(cfg.ExportDir, logger)
		if err != nil {
			logger.Error("failed to create parquet exporter", "error", err)
			return err
		}
		exporter = pq
		logger.Info("parquet export enabled", "dir", cfg.ExportDir)
	} else {
		logger.Info("parquet export disabled")
	}

	p := pipeline.New(store, exporter, logger, metrics, cfg.SpineStart)

	srv := newServer(cfg, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if srv != nil {
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	_, runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error("pipeline error", "error", runErr)
	}

	if serve && runErr == nil {
		<-ctx.Done()
	}
	logger.Info("shutting down")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return runErr
}

// newServer wires the observability endpoints. HTTP is feature-flagged via
// HTTP_ADDR; returns nil when unset so no listener is opened.
func newServer(cfg *config.Config, p *pipeline.Pipeline, logger *slog.Logger) *httpadapter.Server {
	if cfg.HTTPAddr == "" {
		logger.Info("http server disabled")
		return nil
	}
	return httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)
}
