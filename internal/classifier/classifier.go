// Package classifier assigns a category label to a free-text customer complaint
// by sending a fixed prompt to a text-generation model.
package classifier

import (
	"context"
	"strings"
	"time"

	"fjacquet/complaint-classifier/internal/classifyerror"
	"fjacquet/complaint-classifier/internal/llm"
	"fjacquet/complaint-classifier/internal/logging"
	"fjacquet/complaint-classifier/internal/metrics"
	"fjacquet/complaint-classifier/internal/prompt"
)

// ClassificationRequest carries the user supplied complaint. The text may be empty.
type ClassificationRequest struct {
	ComplaintText string
}

// ClassificationResult holds the model output, trimmed of surrounding whitespace.
// The category is not checked against prompt.Categories.
type ClassificationResult struct {
	Category string
}

// Service is the classification operation consumed by the web, CLI and batch layers.
type Service interface {
	Classify(ctx context.Context, req ClassificationRequest) (ClassificationResult, error)
}

// Classifier formats the complaint prompt and forwards it to a TextGenerator.
type Classifier struct {
	generator llm.TextGenerator
	template  *prompt.Template
	logger    logging.Logger
	metrics   *metrics.Metrics
}

// NewClassifier creates a Classifier. metrics may be nil.
func NewClassifier(generator llm.TextGenerator, logger logging.Logger, m *metrics.Metrics) *Classifier {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Classifier{
		generator: generator,
		template:  prompt.NewComplaintTemplate(),
		logger:    logger,
		metrics:   m,
	}
}

// Prompt returns the exact prompt that would be sent for text.
func (c *Classifier) Prompt(text string) string {
	return c.template.Format(text)
}

// Classify classifies one complaint.
//
// Empty text returns classifyerror.ErrEmptyComplaint without calling the model.
// Any model failure is returned as *classifyerror.InvocationError; nothing is retried.
func (c *Classifier) Classify(ctx context.Context, req ClassificationRequest) (ClassificationResult, error) {
	if req.ComplaintText == "" {
		c.metrics.ObserveClassification(metrics.OutcomeEmpty)
		return ClassificationResult{}, classifyerror.ErrEmptyComplaint
	}

	model := llm.ModelNameOf(c.generator)
	log := c.logger.WithFields(
		logging.F(logging.FieldOperation, "classify"),
		logging.F(logging.FieldModel, model),
		logging.F(logging.FieldLength, len(req.ComplaintText)),
	)

	start := time.Now()
	raw, err := c.generator.Generate(ctx, c.template.Format(req.ComplaintText))
	c.metrics.ObserveModelCall(time.Since(start))
	if err != nil {
		c.metrics.ObserveClassification(metrics.OutcomeError)
		log.WithError(err).Warn("Model invocation failed")
		return ClassificationResult{}, &classifyerror.InvocationError{Model: model, Err: err}
	}

	result := ClassificationResult{Category: strings.TrimSpace(raw)}
	c.metrics.ObserveClassification(metrics.OutcomeSuccess)
	log.Debug("Complaint classified", logging.F(logging.FieldCategory, result.Category))

	return result, nil
}
