package http

import (
	"context"
	"errors"

	"gig-copilot/internal/orchestrator"
)

var (
	errInvalidRequest = errors.New("invalid request body")
	errBusy           = errors.New("a previous message is still being handled, please retry")
)

// mapError translates orchestrator errors into client errors. It returns nil
// for errors that must be reported as internal.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, orchestrator.ErrEmptyUserID), errors.Is(err, orchestrator.ErrEmptyText):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errBusy
	default:
		return nil
	}
}
