package bootstrap

import (
	"context"
	"fmt"

	"github.com/haonguyen/perfume-catalog/internal/config"
	"github.com/haonguyen/perfume-catalog/internal/core/ports"
	"github.com/haonguyen/perfume-catalog/internal/core/usecase"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/analyzer/mockvision"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/analyzer/vision"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/fetcher/httpfetch"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/imagestore/cloudinary"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/imagestore/localfs"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/imagestore/s3"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/pacing"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/queue/nats"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/repository/postgres"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/resilience"
)

type App struct {
	Config config.Config

	Queue       ports.MessageQueue
	Perfumes    ports.PerfumeRepository
	Ingredients ports.IngredientRepository

	IngestUC  ports.PerfumeIngestor
	BatchUC   ports.BatchIngestor
	CatalogUC ports.CatalogReader

	closeFn func()
}

// Options tweak which side services are wired. The CLI skips the queue;
// the API and worker want it.
type Options struct {
	WithQueue bool
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	perfumes := postgres.NewPerfumeRepository(db)
	if err := perfumes.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	ingredients := postgres.NewIngredientRepository(db)

	executorCfg := resilience.DefaultConfig()
	if cfg.RetryMaxAttempts > 0 {
		executorCfg.RetryMaxAttempts = cfg.RetryMaxAttempts
	}
	executor := resilience.NewExecutor(executorCfg)

	store, err := newImageStore(cfg, executor)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	analyzer, err := newAnalyzer(cfg, executor)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	fetcher := httpfetch.New(httpfetch.Options{
		Timeout:            cfg.FetchTimeout,
		ResilienceExecutor: executor,
	})

	pacer, err := pacing.FromConfig(cfg.BatchPacing, cfg.BatchPacingDelay, cfg.BatchPacingRPS, cfg.BatchPacingBurst)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init pacer: %w", err)
	}

	var queue *nats.Queue
	if opts.WithQueue {
		queue, err = nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
			ResilienceExecutor: executor,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init message queue: %w", err)
		}
	}

	ingestUC := usecase.NewIngestPerfumeUseCase(fetcher, store, analyzer, perfumes)
	batchUC := usecase.NewBatchIngestUseCase(ingestUC, pacer)
	catalogUC := usecase.NewCatalogQueryUseCase(perfumes, ingredients)

	app := &App{
		Config:      cfg,
		Perfumes:    perfumes,
		Ingredients: ingredients,

		IngestUC:  ingestUC,
		BatchUC:   batchUC,
		CatalogUC: catalogUC,

		closeFn: func() {
			if queue != nil {
				queue.Close()
			}
			_ = db.Close()
		},
	}
	if queue != nil {
		app.Queue = queue
	}
	return app, nil
}

func newImageStore(cfg config.Config, executor *resilience.Executor) (ports.ImageStore, error) {
	switch cfg.ImageBackend {
	case "cloudinary":
		return cloudinary.New(cloudinary.Options{
			CloudName:          cfg.CloudinaryCloudName,
			UploadPreset:       cfg.CloudinaryUploadPreset,
			Timeout:            cfg.UploadTimeout,
			ResilienceExecutor: executor,
		})
	case "s3":
		return s3.New(s3.Options{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
			PublicURL: cfg.S3PublicURL,
		})
	case "local":
		return localfs.New(cfg.LocalStoragePath, cfg.LocalStorageURL)
	default:
		return nil, fmt.Errorf("unknown image backend %q", cfg.ImageBackend)
	}
}

func newAnalyzer(cfg config.Config, executor *resilience.Executor) (ports.ImageAnalyzer, error) {
	switch cfg.AnalyzerBackend {
	case "mock":
		return mockvision.New(), nil
	case "vision":
		return vision.New(vision.Options{
			BaseURL:            cfg.VisionAPIURL,
			APIKey:             cfg.VisionAPIKey,
			Timeout:            cfg.AnalyzeTimeout,
			ResilienceExecutor: executor,
		})
	default:
		return nil, fmt.Errorf("unknown analyzer backend %q", cfg.AnalyzerBackend)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
