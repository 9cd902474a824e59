package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

const (
	// NonceSize is the length of the random nonce at the start of every envelope.
	NonceSize = 24

	// Overhead is the number of bytes an envelope adds to its plaintext.
	Overhead = NonceSize + secretbox.Overhead
)

// Compile-time interface satisfaction checks.
var (
	_ driven.Cipher        = (*SecretBox)(nil)
	_ driven.CipherFactory = NewCipher
)

// SecretBox is a driven.Cipher backed by NaCl secretbox. The key lives in a
// memguard enclave and is only decrypted into locked memory for the duration
// of a single Encrypt or Decrypt call.
//
// A SecretBox is not safe for concurrent use with Wipe.
type SecretBox struct {
	key *memguard.Enclave
}

// NewSecretBox seals key into an enclave and returns a cipher using it.
// key must be KeySize bytes and is wiped before NewSecretBox returns.
func NewSecretBox(key []byte) (*SecretBox, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key size: expected %d bytes, got %d bytes", KeySize, len(key))
	}
	return &SecretBox{key: memguard.NewEnclave(key)}, nil
}

// NewCipher is the driven.CipherFactory for SecretBox.
func NewCipher(key []byte) (driven.Cipher, error) {
	box, err := NewSecretBox(key)
	if err != nil {
		return nil, err
	}
	return box, nil
}

// Encrypt seals plaintext under a fresh random nonce.
func (b *SecretBox) Encrypt(plaintext []byte) ([]byte, error) {
	if b.key == nil {
		return nil, driven.ErrStoreClosed
	}

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("rand nonce: %w", err)
	}

	key, err := b.key.Open()
	if err != nil {
		return nil, fmt.Errorf("open key enclave: %w", err)
	}
	defer key.Destroy()

	// Seal appends to nonce, producing: nonce || tag || ciphertext.
	return secretbox.Seal(nonce[:], plaintext, &nonce, key.ByteArray32()), nil
}

// Decrypt verifies and opens an envelope produced by Encrypt. Any envelope
// that does not authenticate under this key yields driven.ErrAuthentication.
func (b *SecretBox) Decrypt(envelope []byte) ([]byte, error) {
	if b.key == nil {
		return nil, driven.ErrStoreClosed
	}
	if len(envelope) < Overhead {
		return nil, fmt.Errorf("envelope too short (%d bytes): %w", len(envelope), driven.ErrAuthentication)
	}

	var nonce [NonceSize]byte
	copy(nonce[:], envelope[:NonceSize])

	key, err := b.key.Open()
	if err != nil {
		return nil, fmt.Errorf("open key enclave: %w", err)
	}
	defer key.Destroy()

	plaintext, ok := secretbox.Open(nil, envelope[NonceSize:], &nonce, key.ByteArray32())
	if !ok {
		return nil, driven.ErrAuthentication
	}
	return plaintext, nil
}

// Wipe drops the key enclave.
func (b *SecretBox) Wipe() {
	b.key = nil
}
