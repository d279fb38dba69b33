package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/complaint-classifier/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// contentGenerator is the subset of *genai.GenerativeModel used by GeminiClient.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements TextGenerator on top of the Google Gemini API.
type GeminiClient struct {
	client    *genai.Client
	model     contentGenerator
	modelName string
	timeout   time.Duration
	log       logging.Logger
}

// GeminiOptions configures NewGeminiClient.
type GeminiOptions struct {
	APIKey string
	Model  string
	// Timeout bounds each call; zero leaves the client's own default in place.
	Timeout time.Duration
}

// NewGeminiClient creates a client authenticated with opts.APIKey.
func NewGeminiClient(ctx context.Context, opts GeminiOptions, logger logging.Logger) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini client requires an API key")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		model:     client.GenerativeModel(opts.Model),
		modelName: opts.Model,
		timeout:   opts.Timeout,
		log:       logger,
	}, nil
}

// newGeminiClientWithModel is used by tests to inject a fake model.
func newGeminiClientWithModel(model contentGenerator, name string, timeout time.Duration, logger logging.Logger) *GeminiClient {
	return &GeminiClient{
		model:     model,
		modelName: name,
		timeout:   timeout,
		log:       logger,
	}
}

// ModelName returns the configured Gemini model.
func (c *GeminiClient) ModelName() string {
	return c.modelName
}

// Generate sends prompt to Gemini and returns the text of the first candidate.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	c.log.Debug("Gemini response received",
		logging.F(logging.FieldModel, c.modelName),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return text, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
