package httputil

import (
	"context"
	"errors"
	"time"
)

// Defaults used by [RetryWithBackoff].
const (
	DefaultAttempts = 3
	DefaultDelay    = 250 * time.Millisecond
	MaxDelay        = 5 * time.Second
)

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Retry executes fn up to attempts times with exponential backoff.
// Only errors wrapped with [RetryableError] are retried; other errors are
// returned immediately. Returns the last error if all attempts fail, or
// ctx.Err() if ctx is cancelled while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
				delay = min(delay*2, MaxDelay)
			}
		}
	}
	return lastErr
}

// RetryWithBackoff calls [Retry] with [DefaultAttempts] and [DefaultDelay].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultAttempts, DefaultDelay, fn)
}
