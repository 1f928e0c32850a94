package store

import (
	"sync"
)

// KV is a string-valued key-value store. Implementations must be safe for
// concurrent use.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
}

// MemoryStore is a concurrency-safe in-memory KV. Contents are lost when
// the process exits.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}
