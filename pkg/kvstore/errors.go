package kvstore

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("kvstore: key not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("kvstore: closed")

	// ErrUnsupportedURL is returned by Open for an unknown URL scheme.
	ErrUnsupportedURL = errors.New("kvstore: unsupported storage URL")

	// ErrCorrupted is returned when a file store cannot be decoded.
	ErrCorrupted = errors.New("kvstore: corrupted state file")
)
