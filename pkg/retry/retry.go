package retry

import (
	"context"
	"time"
)

// Policy configures Do. Attempts counts the first call, so Attempts=2 means
// one retry. Backoff is linear: attempt n waits n*Delay, capped at MaxDelay.
type Policy struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration
	// AttemptTimeout bounds every single attempt when positive.
	AttemptTimeout time.Duration
	// Retryable decides whether an error is worth another attempt. Nil retries everything.
	Retryable func(error) bool
}

// Once is the policy for a single retry with a short backoff.
func Once(delay, attemptTimeout time.Duration) Policy {
	return Policy{Attempts: 2, Delay: delay, AttemptTimeout: attemptTimeout}
}

// Do runs fn until it succeeds, the policy is exhausted or ctx is done.
// The last error is returned unwrapped so callers can match it.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	_, err := DoValue(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoValue is Do for functions that return a value.
func DoValue[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := max(p.Attempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(p.delay(attempt)):
			case <-ctx.Done():
				return zero, lastErr
			}
		}
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, lastErr
			}
			return zero, err
		}

		v, err := callAttempt(ctx, p.AttemptTimeout, fn)
		if err == nil {
			return v, nil
		}
		lastErr = err

		// A cancelled parent is final; a per-attempt deadline is not.
		if ctx.Err() != nil || (p.Retryable != nil && !p.Retryable(err)) {
			break
		}
	}
	return zero, lastErr
}

func callAttempt[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

func (p Policy) delay(attempt int) time.Duration {
	d := time.Duration(attempt) * p.Delay
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
