package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedProvider throttles outbound model calls. Batch runs share
// one limiter per provider so concurrent reviews do not hammer the API.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a provider with a token-bucket limiter.
func WithRateLimit(inner Provider, requestsPerSecond float64, burst int) *RateLimitedProvider {
	if burst <= 0 {
		burst = 1
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &RateLimitedProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the wrapped provider's name
func (p *RateLimitedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *RateLimitedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Invoke waits for rate limit clearance, then delegates.
func (p *RateLimitedProvider) Invoke(ctx context.Context, prompt string, out any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	return p.inner.Invoke(ctx, prompt, out)
}
