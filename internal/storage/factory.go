package storage

import (
	"fmt"

	"dbsnap/internal/config"
	"dbsnap/internal/snap"
)

// NewFromConfig creates a Storage implementation based on the storage config type.
func NewFromConfig(cfg config.StorageConfig) (snap.Storage, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStorage(), nil
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("filesystem storage requires root to be set")
		}
		return NewFileSystemStorage(cfg.Root)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
