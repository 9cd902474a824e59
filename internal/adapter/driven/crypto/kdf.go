package crypto

import (
	"crypto/sha256"
	"unicode/utf8"

	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

// KeySize is the length in bytes of derived keys.
const KeySize = sha256.Size

// Compile-time interface satisfaction check.
var _ driven.KeyDeriver = SHA256Deriver{}

// SHA256Deriver derives keys as the SHA-256 digest of the passphrase's UTF-8 bytes.
type SHA256Deriver struct{}

// DeriveKey returns sha256(passphrase). Returns driven.ErrInvalidPassphrase
// if passphrase is not valid UTF-8.
func (SHA256Deriver) DeriveKey(passphrase string) ([]byte, error) {
	if !utf8.ValidString(passphrase) {
		return nil, driven.ErrInvalidPassphrase
	}
	sum := sha256.Sum256([]byte(passphrase))
	return sum[:], nil
}
