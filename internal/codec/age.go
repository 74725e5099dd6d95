package codec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"dbsnap/internal/snap"
)

// AgeCodec layers age X25519 encryption on top of an inner codec (gzip in
// practice). Encoding needs only the public key, so unattended backups never
// touch key material. Decoding requires Unlock with the passphrase protecting
// the private key; the unlocked identity is held in memory only.
type AgeCodec struct {
	inner          snap.Codec
	publicKeyPath  string
	privateKeyPath string
	identity       *age.X25519Identity
}

// NewAgeCodec creates an age codec wrapping inner.
func NewAgeCodec(inner snap.Codec, publicKeyPath, privateKeyPath string) *AgeCodec {
	return &AgeCodec{
		inner:          inner,
		publicKeyPath:  publicKeyPath,
		privateKeyPath: privateKeyPath,
	}
}

// Setup generates a new X25519 key pair, stores the public key in plaintext,
// and encrypts the private key with the passphrase using age's scrypt-based
// passphrase encryption.
func (c *AgeCodec) Setup(passphrase string) error {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.publicKeyPath), 0700); err != nil {
		return fmt.Errorf("creating public key directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.privateKeyPath), 0700); err != nil {
		return fmt.Errorf("creating private key directory: %w", err)
	}

	if err := os.WriteFile(c.publicKeyPath, []byte(identity.Recipient().String()+"\n"), 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}

	privFile, err := os.OpenFile(c.privateKeyPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating private key file: %w", err)
	}
	defer privFile.Close()

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}

	w, err := age.Encrypt(privFile, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.WriteString(w, identity.String()+"\n"); err != nil {
		return fmt.Errorf("writing encrypted private key: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encrypted private key: %w", err)
	}

	return nil
}

// IsConfigured returns true if both key files exist at configured paths.
func (c *AgeCodec) IsConfigured() bool {
	if _, err := os.Stat(c.publicKeyPath); err != nil {
		return false
	}
	if _, err := os.Stat(c.privateKeyPath); err != nil {
		return false
	}
	return true
}

// Unlock decrypts the private key using the passphrase and keeps the unlocked
// identity in memory for the rest of the session. Required before Decode.
func (c *AgeCodec) Unlock(passphrase string) error {
	privData, err := os.ReadFile(c.privateKeyPath)
	if err != nil {
		return fmt.Errorf("reading private key file: %w", err)
	}

	scryptID, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(privData), scryptID)
	if err != nil {
		return fmt.Errorf("decrypting private key (wrong passphrase?): %w", err)
	}

	keyData, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading decrypted private key: %w", err)
	}

	identity, err := age.ParseX25519Identity(strings.TrimSpace(string(keyData)))
	if err != nil {
		return fmt.Errorf("parsing private key: %w", err)
	}

	c.identity = identity
	return nil
}

// Encode runs the inner codec and encrypts the result with the public key.
func (c *AgeCodec) Encode(data []byte) ([]byte, error) {
	recipient, err := c.loadRecipient()
	if err != nil {
		return nil, fmt.Errorf("loading public key: %w", err)
	}

	compressed, err := c.inner.Encode(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return nil, fmt.Errorf("encrypting payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decrypts the payload with the unlocked identity and runs the inner
// codec on the result. Fails if Unlock has not been called.
func (c *AgeCodec) Decode(data []byte) ([]byte, error) {
	if c.identity == nil {
		return nil, fmt.Errorf("codec is locked: unlock with the passphrase first")
	}

	r, err := age.Decrypt(bytes.NewReader(data), c.identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting payload: %w", err)
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted payload: %w", err)
	}
	return c.inner.Decode(compressed)
}

// loadRecipient reads and parses the public key file.
func (c *AgeCodec) loadRecipient() (*age.X25519Recipient, error) {
	data, err := os.ReadFile(c.publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading public key file: %w", err)
	}
	recipient, err := age.ParseX25519Recipient(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return recipient, nil
}

// Compile-time check that AgeCodec implements snap.Codec interface
var _ snap.Codec = (*AgeCodec)(nil)
