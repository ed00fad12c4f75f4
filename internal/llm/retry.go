package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// retrySleepFunc is the sleep function used between attempts (injectable for tests)
var retrySleepFunc = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryProvider decorates a Provider with bounded retry and jittered
// exponential backoff. The revision loop never retries on its own: by
// the time it sees a failure, the wrapper's attempts are exhausted.
type RetryProvider struct {
	inner    Provider
	attempts int
	base     time.Duration
}

// WithRetry wraps a provider in the retry decorator.
func WithRetry(inner Provider, attempts int, base time.Duration) *RetryProvider {
	if attempts < 1 {
		attempts = 1
	}
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	return &RetryProvider{
		inner:    inner,
		attempts: attempts,
		base:     base,
	}
}

// Name returns the wrapped provider's name
func (r *RetryProvider) Name() string {
	return r.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (r *RetryProvider) IsAvailable(ctx context.Context) bool {
	return r.inner.IsAvailable(ctx)
}

// Invoke calls the wrapped provider up to the configured attempt count,
// sleeping a jittered exponential backoff between attempts.
func (r *RetryProvider) Invoke(ctx context.Context, prompt string, out any) error {
	var lastErr error

	for attempt := 0; attempt < r.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = r.inner.Invoke(ctx, prompt, out)
		if lastErr == nil {
			return nil
		}

		if attempt < r.attempts-1 {
			delay := backoffDelay(r.base, attempt)
			slog.Debug("model call failed, retrying",
				"provider", r.inner.Name(),
				"attempt", attempt+1,
				"delay", delay,
				"error", lastErr)
			if err := retrySleepFunc(ctx, delay); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%s: %d attempts exhausted: %w", r.inner.Name(), r.attempts, lastErr)
}

// backoffDelay returns base*2^attempt with half the span randomized,
// so concurrent batch workers do not retry in lockstep.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	d := base << uint(attempt)
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}
