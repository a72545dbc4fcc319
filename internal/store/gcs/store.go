// Package gcs is a BlobStore over Google Cloud Storage objects, one object
// per dataset key under a configurable prefix.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/dvloznov/pockit/internal/store"
)

// Store keeps one JSON object per dataset key in a bucket.
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewStore creates a store over gs://<bucket>/<prefix>/. It assumes
// Application Default Credentials unless credentialsFile is set.
func NewStore(ctx context.Context, bucket, prefix, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Store{client: client, bucket: bucket, prefix: prefix}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Get implements the BlobStore interface. A missing object is "no data yet",
// not an error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	rc, err := s.client.Bucket(s.bucket).Object(s.object(key)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", s.object(key), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.object(key), err)
	}
	return data, true, nil
}

// Set implements the BlobStore interface.
func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(s.object(key)).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", s.object(key), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", s.object(key), err)
	}
	return nil
}

func (s *Store) object(key string) string {
	return path.Join(s.prefix, key+".json")
}

// Ensure Store implements BlobStore.
var _ store.BlobStore = (*Store)(nil)
