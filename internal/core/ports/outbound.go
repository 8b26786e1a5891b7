package ports

import (
	"context"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

// ImageFetcher retrieves raw image bytes from a source URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, sourceURL string) (*domain.FetchedAsset, error)
}

// ImageStore uploads a fetched asset to the hosted image service.
type ImageStore interface {
	Upload(ctx context.Context, asset *domain.FetchedAsset, folder string) (*domain.StoredImage, error)
}

// ImageAnalyzer produces a best-effort structured guess for a stored
// image. Implementations may be a deterministic stub or a live vision
// backend; the workflow treats both identically.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageURL string) (*domain.Analysis, error)
}

// PerfumeRepository is the sole persistence boundary for catalog records.
type PerfumeRepository interface {
	Insert(ctx context.Context, perfume *domain.Perfume) (*domain.Perfume, error)
	GetByID(ctx context.Context, id int64) (*domain.Perfume, error)
	ListAll(ctx context.Context) ([]domain.Perfume, error)
	Search(ctx context.Context, term string) ([]domain.Perfume, error)
	FilterByFamily(ctx context.Context, family string) ([]domain.Perfume, error)
}

// IngredientRepository reads the ingredient catalog.
type IngredientRepository interface {
	ListAll(ctx context.Context) ([]domain.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
}

// IngestRequest is the payload carried over the message queue for
// asynchronous ingestion.
type IngestRequest struct {
	SourceURL string               `json:"source_url"`
	Options   domain.IngestOptions `json:"options"`
}

// MessageQueue publishes/consumes asynchronous ingest requests.
type MessageQueue interface {
	PublishIngestRequested(ctx context.Context, req IngestRequest) error
	SubscribeIngestRequested(ctx context.Context, handler func(context.Context, IngestRequest) error) error
}

// Pacer suspends between batch items. Implementations range from a
// fixed delay to a token bucket to no pacing at all (tests).
type Pacer interface {
	Wait(ctx context.Context) error
}
