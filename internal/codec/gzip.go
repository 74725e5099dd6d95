package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"dbsnap/internal/snap"
)

// GzipCodec compresses archive payloads with gzip. This is the baseline
// codec: every archive on storage is gzipped, matching the .gz extension.
type GzipCodec struct{}

// NewGzipCodec creates a new gzip codec.
func NewGzipCodec() *GzipCodec {
	return &GzipCodec{}
}

// Encode gzips the payload.
func (*GzipCodec) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compressing payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing compression: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode gunzips the payload.
func (*GzipCodec) Decode(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading gzip header: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing payload: %w", err)
	}
	return out, nil
}

// Compile-time check that GzipCodec implements snap.Codec interface
var _ snap.Codec = (*GzipCodec)(nil)
