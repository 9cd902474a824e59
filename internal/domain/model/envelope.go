package model

import "time"

// FormatVersion is the envelope format written by this build.
const FormatVersion = "1.0.0"

// FileExtension is appended to database paths that do not already carry it.
const FileExtension = ".pwdb"

// Envelope is the whole-store payload before file-level encryption. Entries
// holds one opaque token per record; its order defines record indices.
type Envelope struct {
	Created time.Time
	Version string
	Entries []string
}
