package ports

import (
	"context"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

// PerfumeIngestor is the inbound contract for the single-item workflow.
type PerfumeIngestor interface {
	Ingest(ctx context.Context, sourceURL string, opts domain.IngestOptions) *domain.IngestOutcome
}

// BatchIngestor drives the single-item workflow over an ordered URL list.
type BatchIngestor interface {
	IngestBatch(ctx context.Context, sourceURLs []string, opts domain.IngestOptions) *domain.BatchOutcome
}

// CatalogReader is the inbound read model for the browse/detail views.
type CatalogReader interface {
	ListPerfumes(ctx context.Context) ([]domain.Perfume, error)
	GetPerfume(ctx context.Context, id int64) (*domain.Perfume, error)
	SearchPerfumes(ctx context.Context, term string) ([]domain.Perfume, error)
	PerfumesByFamily(ctx context.Context, family string) ([]domain.Perfume, error)
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error)
}
