package apierr

import "errors"

// Codes assigned by the client when the backend provided none.
const (
	CodeNetwork = "NETWORK_ERROR"
	CodeUnknown = "UNKNOWN_ERROR"
)

// Error is a normalized API failure.
type Error struct {
	// Details is the parsed backend payload, if any.
	Details any `json:"details,omitempty"`
	// Message is the localized, user-facing message.
	Message string `json:"message"`
	// Raw is the untranslated message extracted from the response.
	Raw string `json:"raw,omitempty"`
	// Code is the backend error code, NETWORK_ERROR or UNKNOWN_ERROR.
	Code string `json:"code,omitempty"`
	// Err is the underlying cause for client-side failures.
	Err error `json:"-"`
	// Status is the HTTP status; 0 when no response was received.
	Status int `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same status and code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Code == t.Code
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// CodeOf returns the code carried by err, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNetwork reports whether err is a normalized network failure.
func IsNetwork(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeNetwork
}

// IsStatus reports whether err carries one of the given statuses.
func IsStatus(err error, statuses ...int) bool {
	status := StatusOf(err)
	if status == 0 {
		return false
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
