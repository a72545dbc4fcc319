// Package inmemory is an in-process BlobStore. Data is lost on restart - use
// the file or gcs stores for persistence.
package inmemory

import (
	"context"
	"sync"

	"github.com/dvloznov/pockit/internal/store"
)

// Store holds blobs in a map and is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get implements the BlobStore interface.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}

	// Return a copy to avoid external modifications.
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Set implements the BlobStore interface.
func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[key] = cp
	return nil
}

// Ensure Store implements BlobStore.
var _ store.BlobStore = (*Store)(nil)
