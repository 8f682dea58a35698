package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func TestDo_RetriesOnceThenSucceeds(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Once(time.Millisecond, 0), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errFlaky
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_ExhaustedReturnsLastError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Once(time.Millisecond, 0), func(ctx context.Context) error {
		calls++
		return errFlaky
	})
	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 2, calls)
}

func TestDo_NonRetryable(t *testing.T) {
	calls := 0
	p := Once(time.Millisecond, 0)
	p.Retryable = func(err error) bool { return !errors.Is(err, errFlaky) }
	err := Do(context.Background(), p, func(ctx context.Context) error {
		calls++
		return errFlaky
	})
	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
}

func TestDoValue_AttemptTimeout(t *testing.T) {
	calls := 0
	v, err := DoValue(context.Background(), Once(time.Millisecond, 10*time.Millisecond), func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			<-ctx.Done()
			return 0, ctx.Err()
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestDo_CancelledParentStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Policy{Attempts: 3, Delay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		cancel()
		return errFlaky
	})
	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
}

func TestPolicy_DelayCapped(t *testing.T) {
	p := Policy{Delay: time.Second, MaxDelay: 1500 * time.Millisecond}
	assert.Equal(t, time.Second, p.delay(1))
	assert.Equal(t, 1500*time.Millisecond, p.delay(2))
}
