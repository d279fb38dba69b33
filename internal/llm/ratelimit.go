package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedGenerator spaces calls to the wrapped generator with a token bucket.
// It waits for a token; it never retries.
type RateLimitedGenerator struct {
	next    TextGenerator
	limiter *rate.Limiter
}

// NewRateLimitedGenerator allows requestsPerMinute calls per minute with a burst of one.
// A non-positive rate returns next unchanged.
func NewRateLimitedGenerator(next TextGenerator, requestsPerMinute int) TextGenerator {
	if requestsPerMinute <= 0 {
		return next
	}
	interval := time.Minute / time.Duration(requestsPerMinute)
	return &RateLimitedGenerator{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Generate waits for a token then delegates to the wrapped generator.
func (g *RateLimitedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return g.next.Generate(ctx, prompt)
}

// ModelName reports the wrapped generator's model.
func (g *RateLimitedGenerator) ModelName() string {
	return ModelNameOf(g.next)
}
