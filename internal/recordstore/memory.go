package recordstore

import (
	"context"
	"sync"
)

// memoryStore backs demo runs without a database, and tests.
type memoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string][]byte)}
}

func (s *memoryStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memoryStore) Put(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.records[name] = stored
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, name)
	return nil
}
