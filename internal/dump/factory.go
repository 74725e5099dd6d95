package dump

import (
	"fmt"

	"dbsnap/internal/config"
)

// NewFromConfig creates a Dumper implementation based on the database config type.
// The caller must Close the returned dumper.
func NewFromConfig(cfg config.DatabaseConfig) (*SQLiteDumper, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite database requires path to be set")
		}
		return NewSQLiteDumper(cfg.Path)
	case "memory":
		return NewSQLiteDumper(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
