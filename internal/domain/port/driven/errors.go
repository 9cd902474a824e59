package driven

import "errors"

// Sentinel errors shared by the store, its adapters, and the CLI. Callers
// match them with errors.Is; adapters wrap them with context.
var (
	// ErrAuthentication indicates a wrong passphrase or tampered ciphertext.
	ErrAuthentication = errors.New("authentication failed: wrong passphrase or corrupted data")

	// ErrMalformedEncoding indicates a token that is not valid text encoding.
	ErrMalformedEncoding = errors.New("malformed token encoding")

	// ErrMalformedRecord indicates a decrypted record that is not a valid record document.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMalformedEnvelope indicates a decrypted database that is not a valid envelope document.
	ErrMalformedEnvelope = errors.New("malformed database envelope")

	// ErrUnsupportedVersion indicates an envelope written by an incompatible format version.
	ErrUnsupportedVersion = errors.New("unsupported database format version")

	// ErrIndexOutOfRange indicates an entry index outside [0, len).
	ErrIndexOutOfRange = errors.New("entry index out of range")

	// ErrEmptySearchTerm indicates a search with an empty term.
	ErrEmptySearchTerm = errors.New("search term must not be empty")

	// ErrUnknownField indicates a search on a field that records do not have.
	ErrUnknownField = errors.New("unknown record field")

	// ErrNotFound indicates that no database file exists at the resolved path.
	ErrNotFound = errors.New("database not found")

	// ErrAlreadyExists indicates that a database file already exists at the resolved path.
	ErrAlreadyExists = errors.New("database already exists")

	// ErrStoreClosed indicates an operation on a store after Close.
	ErrStoreClosed = errors.New("store is closed")

	// ErrWriteFailure indicates the database file could not be written.
	ErrWriteFailure = errors.New("database write failed")

	// ErrInvalidText indicates a record field that is not valid UTF-8.
	ErrInvalidText = errors.New("record field is not valid UTF-8")

	// ErrInvalidPassphrase indicates a passphrase that cannot be encoded as UTF-8.
	ErrInvalidPassphrase = errors.New("passphrase is not valid UTF-8")
)
