package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStore keeps blobs on disk and serves them through the router's
// /media/ file server. Used for development and tests.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStore) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if len(data) > MaxUploadSize {
		return "", fmt.Errorf("file size exceeds maximum limit of %d MB", MaxUploadSize/(1<<20))
	}

	key := fmt.Sprintf("%s-%s-%s",
		time.Now().Format("20060102"),
		uuid.New().String(),
		filepath.Base(filename),
	)

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("%s/media/%s", s.baseURL, key), nil
}

// Dir is the on-disk directory backing the store.
func (s *LocalStore) Dir() string {
	return s.dir
}
