package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/resilience"
)

const defaultTimeout = 60 * time.Second

// Client calls a live vision/OCR backend. It is interchangeable with
// the deterministic mock; the workflow never knows which one it got.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	BaseURL            string
	APIKey             string
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(options Options) (*Client, error) {
	if options.BaseURL == "" || options.APIKey == "" {
		return nil, domain.WrapError(domain.ErrConfig, "init vision client",
			fmt.Errorf("base url and api key are required"))
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(options.BaseURL, "/"),
		apiKey:     options.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}, nil
}

type analyzeRequest struct {
	ImageURL string `json:"image_url"`
}

type analyzeResponse struct {
	Brand         string   `json:"brand"`
	Name          string   `json:"name"`
	Family        string   `json:"family"`
	Description   string   `json:"description"`
	Confidence    float64  `json:"confidence"`
	Year          *int     `json:"year"`
	SuggestedTags []string `json:"suggested_tags"`
}

func (c *Client) Analyze(ctx context.Context, imageURL string) (*domain.Analysis, error) {
	var analysis *domain.Analysis
	call := func(ctx context.Context) error {
		result, err := c.analyzeOnce(ctx, imageURL)
		if err != nil {
			return err
		}
		analysis = result
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "vision.analyze", call, classifyVisionError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrAnalysis, "analyze image", err)
	}
	return analysis, nil
}

func (c *Client) analyzeOnce(ctx context.Context, imageURL string) (*domain.Analysis, error) {
	body, err := json.Marshal(analyzeRequest{ImageURL: imageURL})
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision analyze request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, analyzeStatusError(resp)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v out of range", result.Confidence)
	}

	return &domain.Analysis{
		Brand:         result.Brand,
		Name:          result.Name,
		Family:        result.Family,
		Description:   result.Description,
		Confidence:    result.Confidence,
		Year:          result.Year,
		SuggestedTags: result.SuggestedTags,
	}, nil
}

func analyzeStatusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &AnalyzeStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(raw)),
	}
}
