package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

// Store uploads images to any S3-compatible endpoint. It serves as the
// self-hosted alternative to the Cloudinary backend; objects are
// addressed as {folder}/{filename} and served straight from the bucket,
// so the transform tier (width/height/format) stays zero.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally reachable base for stored objects,
	// e.g. a CDN in front of the bucket. Defaults to the endpoint.
	PublicURL string
}

func New(options Options) (*Store, error) {
	if options.Endpoint == "" || options.Bucket == "" {
		return nil, domain.WrapError(domain.ErrConfig, "init s3 store",
			fmt.Errorf("endpoint and bucket are required"))
	}

	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	publicURL := options.PublicURL
	if publicURL == "" {
		scheme := "http"
		if options.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, options.Endpoint)
	}

	return &Store{
		client:    client,
		bucket:    options.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func NewWithClient(client *minio.Client, bucket, publicURL string) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("minio client is required")
	}
	return &Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *Store) Upload(ctx context.Context, asset *domain.FetchedAsset, folder string) (*domain.StoredImage, error) {
	key := folder + "/" + asset.Filename

	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(asset.Data), int64(len(asset.Data)),
		minio.PutObjectOptions{ContentType: asset.ContentType})
	if err != nil {
		return nil, domain.WrapError(domain.ErrStore, "upload image", err)
	}

	return &domain.StoredImage{
		PublicURL: fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key),
		PublicID:  key,
	}, nil
}
