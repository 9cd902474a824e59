package application

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ericfisherdev/pwdb/internal/domain/model"
	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

// VaultService maps stores to and from encrypted database files. The whole
// envelope is sealed with the same derived key as the individual records,
// giving two independent layers of authenticated encryption.
type VaultService struct {
	deriver   driven.KeyDeriver
	newCipher driven.CipherFactory
	text      driven.TextCodec
	files     driven.EnvelopeFile
	logger    *slog.Logger
	now       func() time.Time
}

// NewVaultService creates a new VaultService with the required dependencies.
// A nil logger uses slog.Default().
func NewVaultService(
	deriver driven.KeyDeriver,
	newCipher driven.CipherFactory,
	text driven.TextCodec,
	files driven.EnvelopeFile,
	logger *slog.Logger,
) *VaultService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VaultService{
		deriver:   deriver,
		newCipher: newCipher,
		text:      text,
		files:     files,
		logger:    logger,
		now:       time.Now,
	}
}

// ResolvePath appends model.FileExtension to path unless it already ends with it.
func ResolvePath(path string) string {
	if strings.HasSuffix(path, model.FileExtension) {
		return path
	}
	return path + model.FileExtension
}

// Create writes a new, empty database at the resolved path and returns that
// path. Returns an error wrapping driven.ErrAlreadyExists if a file is already
// there. The new store is not opened.
func (v *VaultService) Create(path, passphrase string) (string, error) {
	resolved := ResolvePath(path)

	cipher, err := v.sessionCipher(passphrase)
	if err != nil {
		return "", err
	}
	defer cipher.Wipe()

	env := model.Envelope{
		Created: v.now(),
		Version: model.FormatVersion,
		Entries: []string{},
	}
	sealed, err := v.sealEnvelope(cipher, env)
	if err != nil {
		return "", err
	}

	if err := v.files.Create(resolved, sealed); err != nil {
		v.logger.Warn("create vault failed", "path", resolved, "error", err)
		return "", err
	}

	v.logger.Info("vault created", "path", resolved, "entries", len(env.Entries))
	return resolved, nil
}

// Open reads and decrypts the database at the resolved path. It fails with
// driven.ErrNotFound for a missing file and driven.ErrAuthentication for a
// wrong passphrase or damaged file. No store is returned on failure.
func (v *VaultService) Open(path, passphrase string) (*Store, error) {
	resolved := ResolvePath(path)

	sealed, err := v.files.Read(resolved)
	if err != nil {
		v.logger.Warn("open vault failed", "path", resolved, "error", err)
		return nil, err
	}

	cipher, err := v.sessionCipher(passphrase)
	if err != nil {
		return nil, err
	}

	plaintext, err := cipher.Decrypt(sealed)
	if err != nil {
		cipher.Wipe()
		v.logger.Warn("open vault failed", "path", resolved, "error", err)
		return nil, fmt.Errorf("decrypt %q: %w", resolved, err)
	}
	env, err := unmarshalEnvelope(plaintext)
	clear(plaintext)
	if err != nil {
		cipher.Wipe()
		v.logger.Warn("open vault failed", "path", resolved, "error", err)
		return nil, fmt.Errorf("parse %q: %w", resolved, err)
	}

	v.logger.Info("vault opened", "path", resolved, "version", env.Version, "entries", len(env.Entries))
	return newStore(resolved, env, cipher, v.text), nil
}

// Save re-encrypts the whole store and atomically replaces its file. The
// store stays open.
func (v *VaultService) Save(s *Store) error {
	if s.Closed() {
		return driven.ErrStoreClosed
	}

	env := s.envelope()
	sealed, err := v.sealEnvelope(s.cipher, env)
	if err != nil {
		return err
	}

	if err := v.files.Replace(s.path, sealed); err != nil {
		v.logger.Warn("save vault failed", "path", s.path, "error", err)
		return err
	}

	v.logger.Info("vault saved", "path", s.path, "entries", len(env.Entries))
	return nil
}

// sessionCipher derives the key for passphrase and hands it to a new cipher.
// The key slice is zeroed before returning.
func (v *VaultService) sessionCipher(passphrase string) (driven.Cipher, error) {
	key, err := v.deriver.DeriveKey(passphrase)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer clear(key)

	cipher, err := v.newCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return cipher, nil
}

func (v *VaultService) sealEnvelope(cipher driven.Cipher, env model.Envelope) ([]byte, error) {
	doc, err := marshalEnvelope(env)
	if err != nil {
		return nil, err
	}
	sealed, err := cipher.Encrypt(doc)
	if err != nil {
		return nil, fmt.Errorf("encrypt envelope: %w", err)
	}
	return sealed, nil
}
