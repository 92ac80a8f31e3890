package settings

import (
	"context"
	"sync"
)

// MemoryStore implements Store in process memory
// Safe for concurrent use; the settings API may write while checks read
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]string
}

// NewMemoryStore creates an empty store where every setting is absent
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]string),
	}
}

// Get implements the Store interface
func (s *MemoryStore) Get(_ context.Context, key string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, exists := s.data[key]
	if !exists {
		return nil, false, nil
	}
	return cloneValues(values), true, nil
}

// Set implements the Store interface
func (s *MemoryStore) Set(_ context.Context, key string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = cloneValues(values)
	return nil
}

// Unset implements the Store interface
func (s *MemoryStore) Unset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Close implements the Store interface
// Nothing to release for an in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
