package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/resilience"
)

const defaultTimeout = 30 * time.Second

// maxImageBytes caps a single download; sources beyond this are not
// catalog images.
const maxImageBytes = 32 << 20

// Fetcher retrieves raw image bytes over HTTP. It performs exactly one
// outbound read per call and never retries on its own unless the
// resilience executor is configured to.
type Fetcher struct {
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(options Options) *Fetcher {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, sourceURL string) (*domain.FetchedAsset, error) {
	var asset *domain.FetchedAsset
	call := func(ctx context.Context) error {
		fetched, err := f.fetchOnce(ctx, sourceURL)
		if err != nil {
			return err
		}
		asset = fetched
		return nil
	}

	var err error
	if f.executor != nil {
		err = f.executor.Execute(ctx, "image.fetch", call, classifyFetchError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrFetch, "fetch image", err)
	}
	return asset, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, sourceURL string) (*domain.FetchedAsset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create fetch request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{
			Operation:  "fetch",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &domain.FetchedAsset{
		Data:        data,
		Filename:    domain.FilenameFromURL(sourceURL),
		ContentType: contentType,
	}, nil
}
