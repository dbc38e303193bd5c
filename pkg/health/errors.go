package health

import "errors"

var (
	// ErrCheckFailed wraps the error of a failed check.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrUnhealthyStatus is returned by HTTPCheck for 5xx answers.
	ErrUnhealthyStatus = errors.New("health: upstream returned an error status")
)
