package opensky

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig configures retry behavior with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first
	// (default: 3)
	MaxAttempts int

	// InitialDelay is the backoff before the first retry (default: 2 seconds)
	InitialDelay time.Duration

	// Multiplier is the backoff multiplier (default: 2.0 for exponential)
	Multiplier float64

	// sleep is replaced in tests to observe backoff delays without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
		Multiplier:   2.0,
	}
}

// Retry executes a function with exponential backoff retry logic.
//
// Only transient failures are retried: rate limit errors (HTTP 429) and
// server errors (5xx). Any other error is returned immediately. The backoff
// delay starts at InitialDelay and is multiplied by Multiplier after each
// retry.
//
// Example usage:
//
//	snap, err := Retry(ctx, DefaultRetryConfig(), func() (*Snapshot, error) {
//	    return client.fetchStates(ctx, box)
//	})
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var zero T

	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	sleep := cfg.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		// First attempt runs immediately; retries wait out the backoff.
		if attempt > 1 {
			if err := sleep(ctx, delay); err != nil {
				return zero, fmt.Errorf("retry cancelled: %w", err)
			}
			delay = time.Duration(float64(delay) * cfg.Multiplier)
		}

		res, err := fn()
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !retryable(err) {
			return zero, err
		}
	}

	return zero, fmt.Errorf("giving up after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

// retryable reports whether an error is worth another attempt. Only rate
// limit (429) and server-side (5xx) failures qualify.
func retryable(err error) bool {
	if _, ok := IsRateLimitError(err); ok {
		return true
	}
	if _, ok := IsServerError(err); ok {
		return true
	}
	return false
}

// sleepContext waits for the delay or the context, whichever ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
