package nlu

import "errors"

var (
	// ErrUnavailable means the capability could not be reached.
	ErrUnavailable = errors.New("nlu: capability unavailable")
	// ErrMalformed means the capability answered with something unusable.
	ErrMalformed = errors.New("nlu: malformed answer")
	// ErrUnsupportedTask is returned for unknown tasks.
	ErrUnsupportedTask = errors.New("nlu: unsupported task")
)
