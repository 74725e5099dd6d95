package snap

// Storage is the transport that persists archive blobs. Implementations may
// be local (filesystem) or remote (S3); the core treats both identically and
// rebuilds its view of the world from List on every operation.
type Storage interface {
	// Put stores a blob under the given name, overwriting any existing blob
	// with the same name (same-second snapshot collisions are last-write-wins
	// per archive file).
	Put(name string, data []byte) error

	// Get retrieves a blob by name. A missing blob is an error.
	Get(name string) ([]byte, error)

	// Delete removes a blob by name.
	Delete(name string) error

	// List returns all names currently present in the storage location,
	// including files unrelated to this tool.
	List() ([]string, error)

	// ValidateSetup verifies that the storage location is accessible.
	ValidateSetup() error
}
