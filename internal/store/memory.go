package store

import (
	"context"
	"sync"
)

// MemoryKV keeps blobs in process memory. Useful for tests and single-run
// tools.
type MemoryKV struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{blobs: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryKV) SetAll(_ context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range entries {
		b := make([]byte, len(v))
		copy(b, v)
		m.blobs[k] = b
	}
	return nil
}

// Set writes a single key. Handy for seeding tests.
func (m *MemoryKV) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
}
