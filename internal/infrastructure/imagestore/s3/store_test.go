package s3

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

func TestNewRequiresEndpointAndBucket(t *testing.T) {
	_, err := New(Options{Bucket: "perfume-images"})
	if !domain.IsKind(err, domain.ErrConfig) {
		t.Fatalf("New() error = %v, want config kind", err)
	}

	_, err = New(Options{Endpoint: "minio.local:9000"})
	if !domain.IsKind(err, domain.ErrConfig) {
		t.Fatalf("New() error = %v, want config kind", err)
	}
}

func TestUploadPutsObjectAndBuildsPublicURL(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	endpoint, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	client, err := minio.New(endpoint.Host, &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Secure: false,
		Region: "us-east-1",
	})
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}

	store, err := NewWithClient(client, "perfume-images", "https://cdn.example.com/")
	if err != nil {
		t.Fatalf("NewWithClient() error = %v", err)
	}

	stored, err := store.Upload(context.Background(), &domain.FetchedAsset{
		Data:        []byte("not really a jpeg"),
		Filename:    "sauvage.jpg",
		ContentType: "image/jpeg",
	}, "perfumes")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
	if gotPath != "/perfume-images/perfumes/sauvage.jpg" {
		t.Fatalf("unexpected object path %q", gotPath)
	}
	if stored.PublicURL != "https://cdn.example.com/perfume-images/perfumes/sauvage.jpg" {
		t.Fatalf("unexpected public url %q", stored.PublicURL)
	}
	if stored.PublicID != "perfumes/sauvage.jpg" {
		t.Fatalf("unexpected public id %q", stored.PublicID)
	}
}

func TestUploadWrapsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	endpoint, _ := url.Parse(server.URL)
	client, err := minio.New(endpoint.Host, &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}
	store, err := NewWithClient(client, "perfume-images", "https://cdn.example.com")
	if err != nil {
		t.Fatalf("NewWithClient() error = %v", err)
	}

	_, err = store.Upload(context.Background(), &domain.FetchedAsset{
		Data:     []byte("x"),
		Filename: "x.jpg",
	}, "perfumes")
	if !domain.IsKind(err, domain.ErrStore) {
		t.Fatalf("Upload() error = %v, want store kind", err)
	}
}
