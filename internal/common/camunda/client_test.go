package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobezie-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, logger.NewNoOpLogger(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, logger.NewNoOpLogger(), "op", func(context.Context) error {
		calls++
		return errors.New("unavailable")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "op failed")
}

func TestRetry_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, logger.NewNoOpLogger(), "op", func(context.Context) error {
		calls++
		return errors.New("pq: password authentication failed for user")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}
	err := Retry(ctx, slow, logger.NewNoOpLogger(), "op", func(context.Context) error {
		return errors.New("timeout")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(errors.New("dial tcp: connection refused")))
	assert.True(t, IsRetryable(errors.New("context deadline exceeded")))
	assert.False(t, IsRetryable(errors.New("rpc error: code = Unauthenticated")))
	assert.False(t, IsRetryable(errors.New("Permission denied")))
}
