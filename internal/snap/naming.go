package snap

import "strings"

// Default archive naming constants, matching the historical on-storage layout
// <prefix>-<14-digit-id>-<entity><extension>. The file-naming convention is
// the wire format: any tool reading the same storage location must honor it.
const (
	DefaultPrefix    = "db-bkp"
	DefaultExtension = ".gz"
)

// Naming maps between (snapshot id, entity name) pairs and storage names.
// The id occupies a fixed-width slot anchored between two dashes, so entity
// names containing dashes decode unambiguously.
type Naming struct {
	Prefix    string
	Extension string
}

// DefaultNaming returns the standard archive naming scheme.
func DefaultNaming() Naming {
	return Naming{Prefix: DefaultPrefix, Extension: DefaultExtension}
}

// Encode builds the storage name for one entity's archive within a snapshot set.
func (n Naming) Encode(id, entity string) string {
	return n.Prefix + "-" + id + "-" + entity + n.Extension
}

// Decode extracts the snapshot id and entity name from a storage name.
// It returns ok=false for any name that does not match the expected shape;
// this is how unrelated files in the same storage location are ignored.
func (n Naming) Decode(name string) (id, entity string, ok bool) {
	rest, found := strings.CutPrefix(name, n.Prefix+"-")
	if !found {
		return "", "", false
	}
	if len(rest) < len(idLayout)+1 || rest[len(idLayout)] != '-' {
		return "", "", false
	}
	id = rest[:len(idLayout)]
	for _, c := range id {
		if c < '0' || c > '9' {
			return "", "", false
		}
	}
	entity, found = strings.CutSuffix(rest[len(idLayout)+1:], n.Extension)
	if !found || entity == "" {
		return "", "", false
	}
	return id, entity, true
}
