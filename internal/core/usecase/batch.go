package usecase

import (
	"context"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
	"github.com/haonguyen/perfume-catalog/internal/core/ports"
)

// BatchIngestUseCase runs the single-item workflow over an ordered URL
// list, strictly sequentially, pacing between items to stay under the
// shared downstream quota. One item's failure never aborts the batch.
type BatchIngestUseCase struct {
	ingestor ports.PerfumeIngestor
	pacer    ports.Pacer
}

func NewBatchIngestUseCase(ingestor ports.PerfumeIngestor, pacer ports.Pacer) *BatchIngestUseCase {
	return &BatchIngestUseCase{ingestor: ingestor, pacer: pacer}
}

func (uc *BatchIngestUseCase) IngestBatch(ctx context.Context, sourceURLs []string, opts domain.IngestOptions) *domain.BatchOutcome {
	results := make([]*domain.IngestOutcome, 0, len(sourceURLs))
	successful := 0

	for index, sourceURL := range sourceURLs {
		itemOpts := opts
		itemOpts.BatchIndex = index

		outcome := uc.ingestor.Ingest(ctx, sourceURL, itemOpts)
		results = append(results, outcome)
		if outcome.Success {
			successful++
		}

		if index == len(sourceURLs)-1 {
			break
		}
		if err := uc.pacer.Wait(ctx); err != nil {
			// Cancelled mid-batch: record the remaining items as
			// failures so the counts still cover every input.
			for range sourceURLs[index+1:] {
				results = append(results, &domain.IngestOutcome{
					Success: false,
					Error:   err.Error(),
					Steps:   domain.StepTrace{},
				})
			}
			break
		}
	}

	return &domain.BatchOutcome{
		Total:      len(sourceURLs),
		Successful: successful,
		Failed:     len(sourceURLs) - successful,
		Results:    results,
	}
}
