package apienv

import "errors"

var (
	ErrInvalidPageURL = errors.New("apienv: invalid page url")
)
