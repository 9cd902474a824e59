package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoadapter "github.com/ericfisherdev/pwdb/internal/adapter/driven/crypto"
	"github.com/ericfisherdev/pwdb/internal/adapter/driven/filestore"
	"github.com/ericfisherdev/pwdb/internal/application"
	"github.com/ericfisherdev/pwdb/internal/config"
	"github.com/ericfisherdev/pwdb/internal/domain/model"
	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with stdin as piped input.
func runCLI(t *testing.T, db, stdin string, args ...string) cliResult {
	t.Helper()
	cfg := &config.Config{DBPath: db, LogLevel: slog.LevelError}
	vault := application.NewVaultService(
		cryptoadapter.SHA256Deriver{},
		cryptoadapter.NewCipher,
		cryptoadapter.Base64Codec{},
		filestore.New(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	var stdout, stderr bytes.Buffer
	root := newRootCmd(cfg, vault)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// newDatabase creates a database protected by "correct-horse" and returns its path.
func newDatabase(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "db")
	res := runCLI(t, db, "correct-horse\ncorrect-horse\n", "create")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "Created "+db+".pwdb")
	return db
}

func addEntry(t *testing.T, db string, args ...string) {
	t.Helper()
	res := runCLI(t, db, "correct-horse\n", append([]string{"add"}, args...)...)
	require.NoError(t, res.err, res.stderr)
}

func TestCLI_CreateAddListScenario(t *testing.T) {
	db := newDatabase(t)

	res := runCLI(t, db, "correct-horse\ns3cr3t\n", "add", "--username", "alice", "--url", "example.com")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Added entry 0")

	res = runCLI(t, db, "correct-horse\n", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "alice")
	assert.Contains(t, res.stdout, "example.com")
	assert.Contains(t, res.stdout, secretMask)
	assert.NotContains(t, res.stdout, "s3cr3t")

	res = runCLI(t, db, "correct-horse\n", "list", "--show-secrets")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "s3cr3t")

	res = runCLI(t, db, "correct-horse\n", "get", "0")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "s3cr3t")

	res = runCLI(t, db, "wrong-pass\n", "list")
	require.ErrorIs(t, res.err, driven.ErrAuthentication)
	assert.Equal(t, ExitAuthentication, exitCode(res.err))
}

func TestCLI_CreateTwiceFails(t *testing.T) {
	db := newDatabase(t)

	res := runCLI(t, db, "other\nother\n", "create")
	require.ErrorIs(t, res.err, driven.ErrAlreadyExists)
	assert.Equal(t, ExitFileState, exitCode(res.err))
}

func TestCLI_CreatePassphraseMismatch(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	res := runCLI(t, db, "one\ntwo\n", "create")
	require.ErrorIs(t, res.err, errUsage)

	res = runCLI(t, db, "one\n", "list")
	assert.ErrorIs(t, res.err, driven.ErrNotFound, "nothing should have been created")
}

func TestCLI_RemoveShiftsIndices(t *testing.T) {
	db := newDatabase(t)
	addEntry(t, db, "--username", "alice", "--secret", "a")
	addEntry(t, db, "--username", "bob", "--secret", "b")
	addEntry(t, db, "--username", "carol", "--secret", "c")

	res := runCLI(t, db, "correct-horse\n", "remove", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Removed entry 1")

	res = runCLI(t, db, "correct-horse\n", "get", "1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "carol")

	res = runCLI(t, db, "correct-horse\n", "get", "2")
	require.ErrorIs(t, res.err, driven.ErrIndexOutOfRange)
	assert.Equal(t, ExitUsage, exitCode(res.err))
}

func TestCLI_EditKeepsUnchangedFields(t *testing.T) {
	db := newDatabase(t)
	addEntry(t, db, "--username", "alice", "--secret", "old", "--url", "example.com", "--notes", "keep me")

	res := runCLI(t, db, "correct-horse\n", "edit", "0", "--url", "new.example.com")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Updated entry 0")

	res = runCLI(t, db, "correct-horse\n", "get", "0")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "alice")
	assert.Contains(t, res.stdout, "old")
	assert.Contains(t, res.stdout, "new.example.com")
	assert.Contains(t, res.stdout, "keep me")
}

func TestCLI_EditPromptSecret(t *testing.T) {
	db := newDatabase(t)
	addEntry(t, db, "--username", "alice", "--secret", "old")

	res := runCLI(t, db, "correct-horse\nbrand-new\n", "edit", "0", "--prompt-secret")
	require.NoError(t, res.err)

	res = runCLI(t, db, "correct-horse\n", "get", "0")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "brand-new")
}

func TestCLI_Search(t *testing.T) {
	db := newDatabase(t)
	addEntry(t, db, "--username", "alice", "--secret", "a", "--url", "mail.example.com")
	addEntry(t, db, "--username", "bob", "--secret", "b", "--url", "bank.example")

	res := runCLI(t, db, "correct-horse\n", "search", "--field", "url", "mail")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "alice")
	assert.NotContains(t, res.stdout, "bob")

	res = runCLI(t, db, "correct-horse\n", "search", "--field", "username", "nobody")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No entries found.")

	res = runCLI(t, db, "correct-horse\n", "search", "")
	require.ErrorIs(t, res.err, driven.ErrEmptySearchTerm)

	res = runCLI(t, db, "correct-horse\n", "search", "--field", "pin", "1")
	require.ErrorIs(t, res.err, driven.ErrUnknownField)
	assert.Equal(t, ExitUsage, exitCode(res.err))
}

func TestCLI_Info(t *testing.T) {
	db := newDatabase(t)
	addEntry(t, db, "--username", "alice", "--secret", "a")

	res := runCLI(t, db, "correct-horse\n", "info")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Version:  1.0.0")
	assert.Contains(t, res.stdout, "Entries:  1")
	assert.Contains(t, res.stdout, "Created:")
}

func TestCLI_ListEmpty(t *testing.T) {
	db := newDatabase(t)

	res := runCLI(t, db, "correct-horse\n", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No entries found.")
}

func TestCLI_InvalidIndex(t *testing.T) {
	db := newDatabase(t)

	res := runCLI(t, db, "correct-horse\n", "get", "first")
	require.ErrorIs(t, res.err, errUsage)
	assert.Equal(t, ExitUsage, exitCode(res.err))
}

func TestCLI_MissingPassphraseInput(t *testing.T) {
	db := newDatabase(t)

	res := runCLI(t, db, "", "list")
	require.ErrorIs(t, res.err, errUsage)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"auth", driven.ErrAuthentication, ExitAuthentication},
		{"not found", driven.ErrNotFound, ExitFileState},
		{"exists", driven.ErrAlreadyExists, ExitFileState},
		{"index", driven.ErrIndexOutOfRange, ExitUsage},
		{"invalid text", fmt.Errorf("add entry: %w", driven.ErrInvalidText), ExitUsage},
		{"write", driven.ErrWriteFailure, ExitError},
		{"closed", driven.ErrStoreClosed, ExitError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}

func TestPrintError_HidesDetailsForAuthentication(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, driven.ErrAuthentication)
	assert.Contains(t, buf.String(), "wrong passphrase")
}

func TestPrintRecord_FlattensControlCharacters(t *testing.T) {
	var buf bytes.Buffer
	r := model.Record{Username: "a\tb", Secret: "line1\nline2", URL: "x\r\ny", Notes: "n"}

	require.NoError(t, printRecord(&buf, 3, r))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "a b")
	assert.Contains(t, lines[2], "line1 line2")
	assert.Contains(t, lines[3], "x y")
}
