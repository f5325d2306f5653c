package repositories

import (
	"context"
	"sync"
)

// MemoryKeyValueStore is an in-memory implementation of KeyValueStore.
type MemoryKeyValueStore struct {
	entries map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryKeyValueStore creates a new instance of MemoryKeyValueStore.
func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{
		entries: make(map[string][]byte),
	}
}

// Get returns a copy of the value stored under key.
func (s *MemoryKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set overwrites the value stored under key.
func (s *MemoryKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[key] = stored
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryKeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
