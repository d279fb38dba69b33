package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerOptions configures NewCircuitBreakerGenerator.
type BreakerOptions struct {
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before a trial call.
	OpenTimeout time.Duration
	// OnStateChange is called on every transition, may be nil.
	OnStateChange func(from, to string)
}

// CircuitBreakerGenerator fails fast while the remote model keeps failing.
type CircuitBreakerGenerator struct {
	next TextGenerator
	cb   *gobreaker.CircuitBreaker
}

// NewCircuitBreakerGenerator wraps next with a gobreaker circuit breaker.
func NewCircuitBreakerGenerator(next TextGenerator, opts BreakerOptions) *CircuitBreakerGenerator {
	if opts.MaxFailures == 0 {
		opts.MaxFailures = 5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "model-invocation",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.MaxFailures
		},
		// A caller giving up is not a model failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	if opts.OnStateChange != nil {
		settings.OnStateChange = func(_ string, from, to gobreaker.State) {
			opts.OnStateChange(from.String(), to.String())
		}
	}

	return &CircuitBreakerGenerator{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Generate delegates to the wrapped generator unless the breaker is open.
func (g *CircuitBreakerGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.next.Generate(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// State returns the breaker state name ("closed", "half-open", "open").
func (g *CircuitBreakerGenerator) State() string {
	return g.cb.State().String()
}

// ModelName reports the wrapped generator's model.
func (g *CircuitBreakerGenerator) ModelName() string {
	return ModelNameOf(g.next)
}
