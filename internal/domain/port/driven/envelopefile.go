package driven

// EnvelopeFile stores the encrypted database bytes at a path. It knows
// nothing about encryption; it only moves opaque bytes.
type EnvelopeFile interface {
	// Create writes data to a new file. Returns ErrAlreadyExists if path exists.
	Create(path string, data []byte) error

	// Read returns the file contents. Returns ErrNotFound if path does not exist.
	Read(path string) ([]byte, error)

	// Replace atomically overwrites path with data. Returns an error wrapping
	// ErrWriteFailure if the replacement could not complete; the previous
	// contents are then left intact.
	Replace(path string, data []byte) error
}
