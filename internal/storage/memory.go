package storage

import (
	"fmt"
	"sort"
	"sync"

	"dbsnap/internal/snap"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// It keeps all blobs in a map, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryStorage struct {
	blobs map[string][]byte
	mu    sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

// Put stores a blob, overwriting any existing blob with the same name.
func (m *MemoryStorage) Put(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[name] = append([]byte(nil), data...)
	return nil
}

// Get retrieves a blob by name.
func (m *MemoryStorage) Get(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[name]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", name)
	}
	return append([]byte(nil), data...), nil
}

// Delete removes a blob by name. Deleting a missing blob is an error.
func (m *MemoryStorage) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[name]; !ok {
		return fmt.Errorf("blob not found: %s", name)
	}
	delete(m.blobs, name)
	return nil
}

// List returns all blob names in sorted order.
func (m *MemoryStorage) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ValidateSetup always succeeds for in-memory storage.
func (m *MemoryStorage) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryStorage implements snap.Storage interface
var _ snap.Storage = (*MemoryStorage)(nil)
