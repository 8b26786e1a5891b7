package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

// Store writes images under a base directory. Development backend only;
// the public URL assumes something else serves basePath.
type Store struct {
	basePath string
	baseURL  string
}

func New(basePath, baseURL string) (*Store, error) {
	if basePath == "" {
		basePath = "./data/images"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Store{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *Store) Upload(_ context.Context, asset *domain.FetchedAsset, folder string) (*domain.StoredImage, error) {
	dir := filepath.Join(s.basePath, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domain.WrapError(domain.ErrStore, "upload image", err)
	}

	key := folder + "/" + asset.Filename
	if err := os.WriteFile(filepath.Join(dir, asset.Filename), asset.Data, 0o644); err != nil {
		return nil, domain.WrapError(domain.ErrStore, "upload image", err)
	}

	return &domain.StoredImage{
		PublicURL: s.baseURL + "/" + key,
		PublicID:  key,
	}, nil
}
