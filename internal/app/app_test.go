package app

import (
	"testing"

	"dbsnap/internal/config"
)

func TestNaming(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.Config
		wantPrefix    string
		wantExtension string
	}{
		{
			name:          "defaults",
			cfg:           config.Config{},
			wantPrefix:    "db-bkp",
			wantExtension: ".gz",
		},
		{
			name:          "age codec switches extension",
			cfg:           config.Config{Codec: config.CodecConfig{Type: "age"}},
			wantPrefix:    "db-bkp",
			wantExtension: ".gz.age",
		},
		{
			name: "explicit naming overrides codec",
			cfg: config.Config{
				Codec:  config.CodecConfig{Type: "age"},
				Naming: config.NamingConfig{Prefix: "snap", Extension: ".bin"},
			},
			wantPrefix:    "snap",
			wantExtension: ".bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := naming(&tt.cfg)
			if n.Prefix != tt.wantPrefix {
				t.Errorf("Prefix = %q, want %q", n.Prefix, tt.wantPrefix)
			}
			if n.Extension != tt.wantExtension {
				t.Errorf("Extension = %q, want %q", n.Extension, tt.wantExtension)
			}
		})
	}
}
