package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest = errors.New("gateway: invalid request")
	ErrEncodeBody     = errors.New("gateway: failed to encode request body")
)

// UnreachableError reports that the backend could not be reached at all.
type UnreachableError struct {
	Method string
	URL    string
	Err    error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("gateway: backend unreachable: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// Unreachable marks the error as a transport failure.
func (e *UnreachableError) Unreachable() bool {
	return true
}

// IsUnreachable reports whether err carries the unreachable marker.
func IsUnreachable(err error) bool {
	var m interface{ Unreachable() bool }
	return errors.As(err, &m) && m.Unreachable()
}
