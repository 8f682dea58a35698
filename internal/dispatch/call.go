package dispatch

import (
	"context"
	"errors"
	"fmt"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
	"gig-copilot/pkg/geocoder"
	"gig-copilot/pkg/retry"
)

// call runs one collaborator operation with the per-call timeout and a
// single retry. Domain answers such as not-found are not retried.
func call[T any](ctx context.Context, d *implDispatcher, fn func(ctx context.Context) (T, error)) (T, error) {
	p := retry.Once(d.opts.RetryDelay, d.opts.CallTimeout)
	p.Retryable = retryable
	return retry.DoValue(ctx, p, fn)
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrDuplicateGoal),
		errors.Is(err, geocoder.ErrNotFound),
		errors.Is(err, geocoder.ErrEmptyPlace),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}

// failure maps a collaborator error onto a Failed result.
func (d *implDispatcher) failure(ctx context.Context, prefix string, c model.Category, op string, err error) model.HandlerResult {
	reason := model.FailUnavailable
	switch {
	case errors.Is(err, context.Canceled):
		reason = model.FailCancelled
	case errors.Is(err, context.DeadlineExceeded):
		reason = model.FailTimeout
	}
	d.l.Warnf(ctx, "%s: %s failed (%s): %v", prefix, op, reason, err)
	return model.Failed(c, reason, fmt.Errorf("%w: %s: %w", model.ErrHandlerUnavailable, op, err))
}

// cancelled reports a superseded turn before any write happened.
func cancelled(ctx context.Context, c model.Category) (model.HandlerResult, bool) {
	if err := ctx.Err(); err != nil {
		reason := model.FailCancelled
		if errors.Is(err, context.DeadlineExceeded) {
			reason = model.FailTimeout
		}
		return model.Failed(c, reason, err), true
	}
	return model.HandlerResult{}, false
}
