package codec

import (
	"bytes"
	"testing"
)

func TestGzipCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"plain text", []byte("hello world")},
		{"empty payload", []byte{}},
		{"binary", []byte{0x00, 0xff, 0x1f, 0x8b, 0x00}},
		{"large repetitive payload", bytes.Repeat([]byte("row\n"), 10000)},
	}

	c := NewGzipCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := c.Encode(tt.data)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			decoded, err := c.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(decoded), len(tt.data))
			}
		})
	}
}

func TestGzipCodec_Compresses(t *testing.T) {
	c := NewGzipCodec()
	data := bytes.Repeat([]byte("the same line over and over\n"), 1000)

	encoded, err := c.Encode(data)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(encoded) >= len(data) {
		t.Errorf("encoded %d bytes >= input %d bytes", len(encoded), len(data))
	}
}

func TestGzipCodec_Decode_Garbage(t *testing.T) {
	c := NewGzipCodec()
	if _, err := c.Decode([]byte("not gzip at all")); err == nil {
		t.Error("Decode() error = nil for non-gzip input")
	}
}
