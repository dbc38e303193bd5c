package session

import "errors"

// Session errors.
var (
	// ErrEmptyToken is returned by Set when the token is empty.
	ErrEmptyToken = errors.New("session: empty token")

	// ErrPersist is returned when durable storage rejects a write.
	ErrPersist = errors.New("session: failed to persist")

	// ErrCorruptedProfile is reported when the stored profile cannot be decoded.
	ErrCorruptedProfile = errors.New("session: corrupted profile")
)
