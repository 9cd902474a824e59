package application_test

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	cryptoadapter "github.com/ericfisherdev/pwdb/internal/adapter/driven/crypto"
	"github.com/ericfisherdev/pwdb/internal/adapter/driven/filestore"
	"github.com/ericfisherdev/pwdb/internal/application"
	"github.com/ericfisherdev/pwdb/internal/domain/model"
	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

// --- Mock implementations ---

// mockEnvelopeFile wraps a real EnvelopeFile and can fail Replace on demand.
type mockEnvelopeFile struct {
	driven.EnvelopeFile
	replaceErr error
	replaces   int
}

func (m *mockEnvelopeFile) Replace(path string, data []byte) error {
	m.replaces++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	return m.EnvelopeFile.Replace(path, data)
}

var errDiskFull = errors.New("no space left on device")

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newVaultService(files driven.EnvelopeFile) *application.VaultService {
	return application.NewVaultService(
		cryptoadapter.SHA256Deriver{},
		cryptoadapter.NewCipher,
		cryptoadapter.Base64Codec{},
		files,
		discardLogger(),
	)
}

// newCipher returns a cipher keyed from passphrase, wiped at test end.
func newCipher(t *testing.T, passphrase string) driven.Cipher {
	t.Helper()
	key, err := cryptoadapter.SHA256Deriver{}.DeriveKey(passphrase)
	require.NoError(t, err)
	c, err := cryptoadapter.NewCipher(key)
	require.NoError(t, err)
	t.Cleanup(c.Wipe)
	return c
}

// openNewStore creates an empty database in a temp dir and opens it.
func openNewStore(t *testing.T) (*application.VaultService, *application.Store) {
	t.Helper()
	svc := newVaultService(filestore.New())
	path, err := svc.Create(filepath.Join(t.TempDir(), "db"), "correct-horse")
	require.NoError(t, err)

	store, err := svc.Open(path, "correct-horse")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return svc, store
}

// storeWith opens a new store pre-populated with records.
func storeWith(t *testing.T, records ...model.Record) *application.Store {
	t.Helper()
	_, store := openNewStore(t)
	for _, r := range records {
		require.NoError(t, store.Add(r))
	}
	return store
}

var (
	alice = model.Record{Username: "alice", Secret: "s3cr3t", URL: "example.com", Notes: ""}
	bob   = model.Record{Username: "bob", Secret: "hunter2", URL: "https://bank.example", Notes: "savings"}
	carol = model.Record{Username: "carol", Secret: "Pa55", URL: "mail.example.com", Notes: "work email"}
)
