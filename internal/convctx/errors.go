package convctx

import "errors"

var (
	ErrEmptyUserID  = errors.New("convctx: empty user id")
	ErrFailedToLoad = errors.New("convctx: failed to load context")
	ErrFailedToSave = errors.New("convctx: failed to save context")
)
