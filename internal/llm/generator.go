// Package llm provides access to the hosted text-generation model used for classification.
// The TextGenerator abstraction lets the classification logic be tested without calling
// the remote API, and lets rate limiting and circuit breaking be layered as decorators.
package llm

import (
	"context"
	"errors"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// TextGenerator sends one prompt to a model and returns its raw text answer.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateFunc adapts a plain function to the TextGenerator interface.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f GenerateFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ModelNamer is implemented by generators that know which model they call.
type ModelNamer interface {
	ModelName() string
}

// ModelNameOf returns the model name of g, looking through decorators.
func ModelNameOf(g TextGenerator) string {
	if n, ok := g.(ModelNamer); ok {
		return n.ModelName()
	}
	return ""
}
