package orchestrator

import "errors"

var (
	ErrEmptyUserID = errors.New("orchestrator: empty user id")
	ErrEmptyText   = errors.New("orchestrator: empty utterance")
	// ErrSuperseded is the cancellation cause of a turn replaced by a newer one.
	ErrSuperseded = errors.New("orchestrator: turn superseded")
	errPanic      = errors.New("orchestrator: handler panic")
)
