package store

import (
	"context"
	"sync"
)

type tripleKey struct {
	collection string
	documentID string
	locale     string
}

// MemoryStore is a thread-safe in-memory exclusion store, mainly for tests
// and single-process deployments without persistence requirements.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[tripleKey][]string
}

// NewMemoryStore creates an empty in-memory exclusion store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[tripleKey][]string)}
}

// ExcludedPaths returns the stored list for the triple, empty when absent.
func (s *MemoryStore) ExcludedPaths(ctx context.Context, collection, documentID, locale string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := s.records[tripleKey{collection, documentID, locale}]
	return append([]string(nil), paths...), nil
}

// SetExcludedPaths upserts the list for the triple.
func (s *MemoryStore) SetExcludedPaths(ctx context.Context, collection, documentID, locale string, paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[tripleKey{collection, documentID, locale}] = append([]string(nil), paths...)
	return nil
}

// DeleteForDocument removes every locale's record for the document.
func (s *MemoryStore) DeleteForDocument(ctx context.Context, collection, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.records {
		if key.collection == collection && key.documentID == documentID {
			delete(s.records, key)
		}
	}
	return nil
}

// Verify MemoryStore implements ExclusionStore.
var _ ExclusionStore = (*MemoryStore)(nil)
