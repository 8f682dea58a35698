package geocoder

import "errors"

var (
	// ErrNotFound means the place text matched nothing.
	ErrNotFound = errors.New("geocoder: place not found")
	// ErrEmptyPlace is returned for blank input.
	ErrEmptyPlace = errors.New("geocoder: empty place")
)
