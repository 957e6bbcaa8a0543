package types

import "errors"

// Domain specific errors shared across handlers and repositories.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrBadRequest      = errors.New("bad request")
	ErrStore           = errors.New("data store failure")
)
