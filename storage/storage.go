package storage

import (
	"context"
	"errors"
	"os"
)

const MaxUploadSize = 100 << 20 // 100 MB

// Store writes media blobs and returns a stable public URL for each. No URL
// is returned unless the write and the visibility change both succeeded.
type Store interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// FromEnv builds the store selected by STORAGE_BACKEND ("gcs" or "local",
// defaulting to local disk).
func FromEnv(ctx context.Context) (Store, error) {
	switch os.Getenv("STORAGE_BACKEND") {
	case "gcs":
		bucket := os.Getenv("GCS_BUCKET")
		if bucket == "" {
			return nil, errors.New("GCS_BUCKET is required when STORAGE_BACKEND=gcs")
		}
		return NewGCSStore(ctx, bucket)
	default:
		dir := os.Getenv("UPLOADS_DIR")
		if dir == "" {
			dir = "uploads/media"
		}
		baseURL := os.Getenv("PUBLIC_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8080"
		}
		return NewLocalStore(dir, baseURL)
	}
}
