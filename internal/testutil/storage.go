package testutil

import (
	"dbsnap/internal/snap"
	"dbsnap/internal/storage"
)

// NewTestStorage creates a new in-memory storage for testing.
func NewTestStorage() snap.Storage {
	return storage.NewMemoryStorage()
}
