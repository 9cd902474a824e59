package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

// Exit code constants for the CLI
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitAuthentication indicates a wrong passphrase or a damaged database
	ExitAuthentication = 2
	// ExitFileState indicates the database file is missing or already exists
	ExitFileState = 3
	// ExitUsage indicates bad arguments such as an index, search term, field, or non-UTF-8 input
	ExitUsage = 4
)

// errUsage marks argument errors detected by the CLI itself.
var errUsage = errors.New("usage error")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, driven.ErrAuthentication):
		return ExitAuthentication
	case errors.Is(err, driven.ErrNotFound), errors.Is(err, driven.ErrAlreadyExists):
		return ExitFileState
	case errors.Is(err, errUsage),
		errors.Is(err, driven.ErrIndexOutOfRange),
		errors.Is(err, driven.ErrEmptySearchTerm),
		errors.Is(err, driven.ErrUnknownField),
		errors.Is(err, driven.ErrInvalidText):
		return ExitUsage
	default:
		return ExitError
	}
}

// printError writes a one-line, user-facing description of err.
func printError(w io.Writer, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, driven.ErrAuthentication):
		msg = "wrong passphrase, or the database is corrupted"
	case errors.Is(err, driven.ErrWriteFailure):
		msg = "could not save the database; the previous version on disk is unchanged (" + err.Error() + ")"
	}
	color.New(color.FgRed).Fprintln(w, "Error:", msg)
}
