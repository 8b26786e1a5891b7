package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
	"github.com/haonguyen/perfume-catalog/internal/infrastructure/resilience"
)

const defaultAPIBase = "https://api.cloudinary.com"
const defaultTimeout = 60 * time.Second

// Client uploads images through Cloudinary's unsigned upload API. An
// unsigned preset keeps credentials out of this process entirely; the
// flip side is that deletion needs a signed server-side call and is
// deliberately unsupported here.
type Client struct {
	apiBase      string
	cloudName    string
	uploadPreset string
	httpClient   *http.Client
	executor     *resilience.Executor
}

type Options struct {
	CloudName    string
	UploadPreset string
	// APIBase overrides the Cloudinary endpoint, for tests.
	APIBase            string
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(options Options) (*Client, error) {
	if options.CloudName == "" || options.UploadPreset == "" {
		return nil, domain.WrapError(domain.ErrConfig, "init cloudinary client",
			fmt.Errorf("cloud name and upload preset are required"))
	}
	apiBase := options.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiBase:      strings.TrimRight(apiBase, "/"),
		cloudName:    options.CloudName,
		uploadPreset: options.UploadPreset,
		httpClient:   &http.Client{Timeout: timeout},
		executor:     options.ResilienceExecutor,
	}, nil
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Upload(ctx context.Context, asset *domain.FetchedAsset, folder string) (*domain.StoredImage, error) {
	var stored *domain.StoredImage
	call := func(ctx context.Context) error {
		result, err := c.uploadOnce(ctx, asset, folder)
		if err != nil {
			return err
		}
		stored = result
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "cloudinary.upload", call, classifyUploadError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrStore, "upload image", err)
	}
	return stored, nil
}

func (c *Client) uploadOnce(ctx context.Context, asset *domain.FetchedAsset, folder string) (*domain.StoredImage, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", asset.Filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(asset.Data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.uploadPreset); err != nil {
		return nil, fmt.Errorf("write upload_preset field: %w", err)
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return nil, fmt.Errorf("write folder field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.apiBase, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, uploadStatusError(resp)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	return &domain.StoredImage{
		PublicURL: result.SecureURL,
		PublicID:  result.PublicID,
		Width:     result.Width,
		Height:    result.Height,
		Format:    result.Format,
	}, nil
}

func uploadStatusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))

	var parsed errorResponse
	message := ""
	if err := json.Unmarshal(raw, &parsed); err == nil {
		message = strings.TrimSpace(parsed.Error.Message)
	}
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	return &UploadStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    message,
	}
}

// Delete is not available through the unsigned API; it needs a signed
// server-side call and stays out of this client's scope.
func (c *Client) Delete(context.Context, string) error {
	return domain.WrapError(domain.ErrStore, "delete image",
		fmt.Errorf("deletion requires a signed server-side call"))
}
