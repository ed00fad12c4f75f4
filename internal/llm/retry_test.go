package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyProvider fails a fixed number of times before succeeding
type flakyProvider struct {
	failures int
	calls    int
}

func (f *flakyProvider) Name() string { return "flaky" }

func (f *flakyProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *flakyProvider) Invoke(ctx context.Context, prompt string, out any) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("transient failure")
	}
	return nil
}

func withFakeSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	original := retrySleepFunc
	var slept []time.Duration
	retrySleepFunc = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	t.Cleanup(func() { retrySleepFunc = original })
	return &slept
}

func TestRetryProvider_SucceedsAfterTransientFailures(t *testing.T) {
	slept := withFakeSleep(t)
	inner := &flakyProvider{failures: 2}
	p := WithRetry(inner, 3, 100*time.Millisecond)

	if err := p.Invoke(context.Background(), "prompt", nil); err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", inner.calls)
	}
	if len(*slept) != 2 {
		t.Errorf("Expected 2 backoff sleeps, got %d", len(*slept))
	}
}

func TestRetryProvider_ExhaustsAttempts(t *testing.T) {
	withFakeSleep(t)
	inner := &flakyProvider{failures: 10}
	p := WithRetry(inner, 3, time.Millisecond)

	err := p.Invoke(context.Background(), "prompt", nil)
	if err == nil {
		t.Fatal("Expected error after exhausting attempts")
	}
	if inner.calls != 3 {
		t.Errorf("Expected exactly 3 attempts, got %d", inner.calls)
	}
}

func TestRetryProvider_HonorsCancellation(t *testing.T) {
	withFakeSleep(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &flakyProvider{failures: 10}
	p := WithRetry(inner, 3, time.Millisecond)

	err := p.Invoke(ctx, "prompt", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("Expected no attempts on cancelled context, got %d", inner.calls)
	}
}

func TestBackoffDelay_GrowsWithAttempts(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 5; attempt++ {
		d := backoffDelay(base, attempt)
		ceiling := base << uint(attempt)
		if ceiling > 30*time.Second {
			ceiling = 30 * time.Second
		}
		if d < ceiling/2 || d > ceiling {
			t.Errorf("Attempt %d: delay %v outside [%v, %v]", attempt, d, ceiling/2, ceiling)
		}
	}
}

func TestWithRetry_ClampsAttempts(t *testing.T) {
	p := WithRetry(&flakyProvider{}, 0, 0)
	if p.attempts != 1 {
		t.Errorf("Expected attempts clamped to 1, got %d", p.attempts)
	}
}
