package cartstore

import (
	"context"
	"sync"

	"github.com/dsemenov/storefront/internal/cart"
)

// MemoryStore holds serialized blobs like the Redis store does, so both go
// through the same codec path. Used in tests and single-process setups.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, sessionID string) (cart.Cart, error) {
	m.mu.Lock()
	data := m.blobs[sessionID]
	m.mu.Unlock()
	return decode(ctx, sessionID, data), nil
}

func (m *MemoryStore) Save(ctx context.Context, sessionID string, c cart.Cart) error {
	data, err := encode(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.blobs[sessionID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.blobs, sessionID)
	m.mu.Unlock()
	return nil
}

// Blob exposes the raw persisted payload for tests.
func (m *MemoryStore) Blob(sessionID string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[sessionID]
	return data, ok
}

// SetBlob injects a raw payload, used by tests to simulate corruption.
func (m *MemoryStore) SetBlob(sessionID string, data []byte) {
	m.mu.Lock()
	m.blobs[sessionID] = data
	m.mu.Unlock()
}
