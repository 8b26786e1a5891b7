package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haonguyen/perfume-catalog/internal/bootstrap"
	"github.com/haonguyen/perfume-catalog/internal/config"
	"github.com/haonguyen/perfume-catalog/internal/core/domain"
	"github.com/haonguyen/perfume-catalog/internal/core/ports"
	"github.com/haonguyen/perfume-catalog/internal/observability/logging"
	"github.com/haonguyen/perfume-catalog/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger("worker", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{WithQueue: true})
	if err != nil {
		slog.Error("bootstrap error", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		slog.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeIngestRequested(ctx, func(handlerCtx context.Context, req ports.IngestRequest) error {
		ingestCtx, cancel := context.WithTimeout(handlerCtx, cfg.IngestTimeout)
		defer cancel()

		workerMetrics.StartIngest()
		start := time.Now()

		outcome := app.IngestUC.Ingest(ingestCtx, req.SourceURL, req.Options)

		var outcomeErr error
		if !outcome.Success {
			outcomeErr = errors.New(outcome.Error)
		}
		workerMetrics.FinishIngest("worker", time.Since(start), failedStepLabel(outcome), outcomeErr)

		if outcome.Success {
			slog.Info("ingest completed",
				"source_url", req.SourceURL,
				"perfume_id", outcome.Perfume.ID,
				"steps", len(outcome.Steps))
			return nil
		}
		slog.Error("ingest failed",
			"source_url", req.SourceURL,
			"error", outcome.Error,
			"steps", len(outcome.Steps))
		return outcomeErr
	})
	if err != nil {
		slog.Error("worker subscribe error", "error", err)
		os.Exit(1)
	}
}

func failedStepLabel(outcome *domain.IngestOutcome) string {
	if outcome == nil || outcome.Success || len(outcome.Steps) == 0 {
		return ""
	}
	last := outcome.Steps[len(outcome.Steps)-1]
	if last.Status != domain.StepFailed {
		return ""
	}
	switch last.Step {
	case 1:
		return "validate"
	case 2:
		return "fetch"
	case 3:
		return "store"
	case 4:
		return "analyze"
	case 5:
		return "persist"
	default:
		return "unknown"
	}
}
