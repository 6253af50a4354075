// Package retry provides a generic retry-with-backoff combinator for
// wrapping arbitrary fallible calls.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// Config controls retry behavior.
type Config struct {
	// MaxAttempts is the total attempt budget, including the first call.
	MaxAttempts int

	// InitialWait is the delay before the second attempt.
	InitialWait time.Duration

	// MaxWait caps the backoff delay.
	MaxWait time.Duration

	// Multiplier is the backoff growth factor per attempt.
	Multiplier float64
}

// DefaultConfig returns the standard retry parameters.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// WaitHinter lets an error suggest its own retry delay (e.g. a rate
// limit response carrying a Retry-After header).
type WaitHinter interface {
	RetryWait() time.Duration
}

// Do invokes fn until it succeeds, the attempt budget is exhausted, or
// retryable reports the error as permanent. Context errors are never
// retried. When retryable is nil every error is treated as transient.
func Do[T any](ctx context.Context, cfg Config, fn func(context.Context) (T, error), retryable func(error) bool) (T, error) {
	var zero T
	var lastErr error

	for attempt := range cfg.MaxAttempts {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		if retryable != nil && !retryable(err) {
			return zero, err
		}

		// Last attempt — don't sleep, just return the error.
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff(cfg, attempt, err)):
		}
	}

	return zero, lastErr
}

// backoff computes the wait duration for the given attempt.
func backoff(cfg Config, attempt int, err error) time.Duration {
	var hint WaitHinter
	if errors.As(err, &hint) {
		if w := hint.RetryWait(); w > 0 {
			return w
		}
	}

	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
