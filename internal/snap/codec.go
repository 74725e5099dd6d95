package snap

// Codec transforms archive payloads on their way to and from storage
// (compression, optionally encryption). Applied per file; the core treats the
// transformation as opaque.
type Codec interface {
	// Encode transforms a plaintext payload into its stored form.
	Encode(data []byte) ([]byte, error)

	// Decode is the inverse of Encode.
	Decode(data []byte) ([]byte, error)
}
