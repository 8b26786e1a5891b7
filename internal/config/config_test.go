package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IMAGE_BACKEND", "")
	t.Setenv("BATCH_PACING", "")
	t.Setenv("BATCH_PACING_DELAY", "")
	t.Setenv("RETRY_MAX_ATTEMPTS", "")
	t.Setenv("FETCH_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ImageBackend != "cloudinary" {
		t.Fatalf("expected default image backend cloudinary, got %q", cfg.ImageBackend)
	}
	if cfg.BatchPacing != "fixed" {
		t.Fatalf("expected default pacing fixed, got %q", cfg.BatchPacing)
	}
	if cfg.BatchPacingDelay != time.Second {
		t.Fatalf("expected default pacing delay 1s, got %v", cfg.BatchPacingDelay)
	}
	if cfg.RetryMaxAttempts != 1 {
		t.Fatalf("expected default retry max attempts 1, got %d", cfg.RetryMaxAttempts)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Fatalf("expected default fetch timeout 30s, got %v", cfg.FetchTimeout)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("IMAGE_BACKEND", "local")
	t.Setenv("BATCH_PACING", "bucket")
	t.Setenv("BATCH_PACING_RPS", "2.5")
	t.Setenv("BATCH_PACING_BURST", "4")
	t.Setenv("INGEST_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ImageBackend != "local" {
		t.Fatalf("expected image backend local, got %q", cfg.ImageBackend)
	}
	if cfg.BatchPacingRPS != 2.5 {
		t.Fatalf("expected pacing rps 2.5, got %v", cfg.BatchPacingRPS)
	}
	if cfg.BatchPacingBurst != 4 {
		t.Fatalf("expected pacing burst 4, got %d", cfg.BatchPacingBurst)
	}
	if cfg.IngestTimeout != 45*time.Second {
		t.Fatalf("expected ingest timeout 45s, got %v", cfg.IngestTimeout)
	}
}

func TestLoadFileOverlayDoesNotBeatEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "cloudinary_cloud_name: from-file\nanalyzer_backend: vision\nfetch_timeout: 5s\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CLOUDINARY_CLOUD_NAME", "from-env")
	t.Setenv("ANALYZER_BACKEND", "")
	t.Setenv("FETCH_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CloudinaryCloudName != "from-env" {
		t.Fatalf("expected env to win, got %q", cfg.CloudinaryCloudName)
	}
	if cfg.AnalyzerBackend != "vision" {
		t.Fatalf("expected file value for analyzer backend, got %q", cfg.AnalyzerBackend)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("expected file value for fetch timeout, got %v", cfg.FetchTimeout)
	}
}

func TestValidateCloudinaryRequiresCredentials(t *testing.T) {
	cfg := Config{
		ImageBackend:     "cloudinary",
		AnalyzerBackend:  "mock",
		PostgresDSN:      "postgres://localhost/perfumes",
		RetryMaxAttempts: 1,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error without cloudinary credentials")
	}
	if !domain.IsKind(err, domain.ErrConfig) {
		t.Fatalf("Validate() error = %v, want config kind", err)
	}

	cfg.CloudinaryCloudName = "demo"
	cfg.CloudinaryUploadPreset = "unsigned"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateVisionRequiresKey(t *testing.T) {
	cfg := Config{
		ImageBackend:     "local",
		LocalStoragePath: "./data/images",
		AnalyzerBackend:  "vision",
		PostgresDSN:      "postgres://localhost/perfumes",
		RetryMaxAttempts: 1,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() expected error without vision credentials")
	}

	cfg.VisionAPIURL = "https://vision.example.com"
	cfg.VisionAPIKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Config{
		ImageBackend:     "dropbox",
		AnalyzerBackend:  "mock",
		PostgresDSN:      "postgres://localhost/perfumes",
		RetryMaxAttempts: 1,
	}
	if err := cfg.Validate(); !domain.IsKind(err, domain.ErrConfig) {
		t.Fatalf("Validate() error = %v, want config kind", err)
	}
}
