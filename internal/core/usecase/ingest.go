package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
	"github.com/haonguyen/perfume-catalog/internal/core/ports"
)

const DefaultImageFolder = "perfumes"

// IngestPerfumeUseCase turns one source URL into one persisted catalog
// record through a strictly sequential five-step pipeline: validate,
// fetch, store, analyze, persist. The first failure short-circuits the
// rest; the trace accumulated so far is always returned so the caller
// can render partial progress. Errors never escape Ingest.
type IngestPerfumeUseCase struct {
	fetcher  ports.ImageFetcher
	store    ports.ImageStore
	analyzer ports.ImageAnalyzer
	repo     ports.PerfumeRepository
	folder   string
}

func NewIngestPerfumeUseCase(
	fetcher ports.ImageFetcher,
	store ports.ImageStore,
	analyzer ports.ImageAnalyzer,
	repo ports.PerfumeRepository,
) *IngestPerfumeUseCase {
	return &IngestPerfumeUseCase{
		fetcher:  fetcher,
		store:    store,
		analyzer: analyzer,
		repo:     repo,
		folder:   DefaultImageFolder,
	}
}

func (uc *IngestPerfumeUseCase) Ingest(ctx context.Context, sourceURL string, opts domain.IngestOptions) *domain.IngestOutcome {
	var steps domain.StepTrace

	fail := func(err error) *domain.IngestOutcome {
		steps.Fail(err.Error())
		return &domain.IngestOutcome{Success: false, Error: err.Error(), Steps: steps}
	}

	steps.Start(1, "validating image url")
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if !domain.LikelyImageURL(sourceURL) {
		return fail(domain.WrapError(domain.ErrInvalidSourceURL, "validate source url",
			errors.New("provide a direct image link")))
	}
	steps.Complete("url validated")

	steps.Start(2, "downloading image")
	asset, err := uc.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return fail(err)
	}
	steps.Complete(fmt.Sprintf("downloaded %s", domain.FormatFileSize(int64(len(asset.Data)))))

	steps.Start(3, "uploading to image store")
	stored, err := uc.store.Upload(ctx, asset, uc.folder)
	if err != nil {
		return fail(err)
	}
	steps.Complete("uploaded and optimized")

	steps.Start(4, "analyzing image")
	analysis, err := uc.analyzer.Analyze(ctx, stored.PublicURL)
	if err != nil {
		return fail(err)
	}
	steps.Complete(fmt.Sprintf("detected: %s %s", analysis.Brand, analysis.Name))

	perfume := buildRecord(analysis, stored, opts)

	steps.Start(5, "saving to database")
	if perfume.ImageURL == "" {
		return fail(domain.WrapError(domain.ErrValidation, "persist perfume",
			errors.New("record has no stored image url")))
	}
	persisted, err := uc.repo.Insert(ctx, perfume)
	if err != nil {
		return fail(err)
	}
	steps.Complete("saved to database")

	return &domain.IngestOutcome{
		Success:  true,
		Perfume:  persisted,
		Analysis: analysis,
		Steps:    steps,
	}
}

// buildRecord merges the analysis, caller options and stored image into
// a record. Overrides are layered last so they win on key collision.
func buildRecord(analysis *domain.Analysis, stored *domain.StoredImage, opts domain.IngestOptions) *domain.Perfume {
	perfume := &domain.Perfume{
		Name:          analysis.Name,
		Brand:         analysis.Brand,
		Family:        analysis.Family,
		Description:   analysis.Description,
		Year:          opts.Year,
		ImageURL:      stored.PublicURL,
		ImagePublicID: stored.PublicID,
		AIConfidence:  analysis.Confidence,
	}
	perfume.ApplyOverrides(opts.Overrides)
	return perfume
}
