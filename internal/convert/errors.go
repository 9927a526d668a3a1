// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "errors"

// Failure categories surfaced to the CLI. Callers match with errors.Is;
// batch mode records them per file instead of aborting.
var (
	// ErrInputNotFound means the input path does not exist or is not readable.
	ErrInputNotFound = errors.New("input file not found")

	// ErrUnreadablePDF means the source could not be parsed or rendered,
	// typically a corrupt or password-protected file.
	ErrUnreadablePDF = errors.New("unreadable PDF")

	// ErrWriteFailed means the output file or a directory on its path could
	// not be written.
	ErrWriteFailed = errors.New("write failed")
)
