package wordcache

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and as a within-run cache
// when no cache directory is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte

	// GetErr and PutErr, when set, are returned by the corresponding
	// operation. Tests use them to exercise the read-failure-as-miss and
	// write-failure-logged paths.
	GetErr error
	PutErr error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, found := m.entries[key]
	if !found {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

// Put implements Store.
func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.entries[key] = cp
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
