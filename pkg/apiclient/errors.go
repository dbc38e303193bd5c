package apiclient

import "errors"

var (
	ErrNoSessionStore = errors.New("apiclient: session store is required")
	ErrEmptyEndpoint  = errors.New("apiclient: endpoint is required")
	ErrMissingID      = errors.New("apiclient: resource id is required")
)
