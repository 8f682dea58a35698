package model

import "errors"

// Error taxonomy shared by every stage of a turn.
var (
	ErrClassificationDegraded = errors.New("classification degraded")
	ErrExtractionIncomplete   = errors.New("extraction incomplete")
	ErrValidationFailed       = errors.New("validation failed")
	ErrHandlerUnavailable     = errors.New("handler unavailable")
	ErrAmbiguousReference     = errors.New("ambiguous reference")
)
