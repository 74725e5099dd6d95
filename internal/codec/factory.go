package codec

import (
	"fmt"

	"dbsnap/internal/config"
	"dbsnap/internal/snap"
)

// NewFromConfig creates a Codec implementation based on the codec config type.
func NewFromConfig(cfg config.CodecConfig) (snap.Codec, error) {
	switch cfg.Type {
	case "", "gzip":
		return NewGzipCodec(), nil
	case "age":
		if cfg.PublicKeyPath == "" || cfg.PrivateKeyPath == "" {
			return nil, fmt.Errorf("age codec requires public_key_path and private_key_path to be set")
		}
		return NewAgeCodec(NewGzipCodec(), cfg.PublicKeyPath, cfg.PrivateKeyPath), nil
	default:
		return nil, fmt.Errorf("unknown codec type: %s", cfg.Type)
	}
}
