package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a backend failure caused by the network, such as a
// timeout or a refused connection.
var ErrNetwork = errors.New("network error")

// RetryableError marks a transient backend failure.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or anything it wraps, came from [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const maxAttempts = 3

// backoff is the first wait between attempts. It doubles each time.
var backoff = 100 * time.Millisecond

// RetryWithBackoff runs fn until it succeeds, fails permanently or has been
// tried maxAttempts times. The last error is returned.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := backoff
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == maxAttempts {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}
