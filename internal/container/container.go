// Package container provides dependency injection for the complaint classifier.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/complaint-classifier/internal/batch"
	"fjacquet/complaint-classifier/internal/classifier"
	"fjacquet/complaint-classifier/internal/config"
	"fjacquet/complaint-classifier/internal/llm"
	"fjacquet/complaint-classifier/internal/logging"
	"fjacquet/complaint-classifier/internal/metrics"
	"fjacquet/complaint-classifier/internal/server"
	"fjacquet/complaint-classifier/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Option customizes NewContainer.
type Option func(*options)

type options struct {
	logger    logging.Logger
	generator llm.TextGenerator
	registry  *prometheus.Registry
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGenerator replaces the Gemini client. The credential is still required.
func WithGenerator(g llm.TextGenerator) Option {
	return func(o *options) { o.generator = g }
}

// WithRegistry registers metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation; dependencies are reached through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	gemini     *llm.GeminiClient
	breaker    *llm.CircuitBreakerGenerator
	classifier *classifier.Classifier
}

// NewContainer creates and wires all application dependencies.
//
// The API credential is resolved first; when it is missing the returned error
// is a *classifyerror.ConfigurationError and nothing else is created.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	apiKey, source, err := config.ResolveAPIKey(cfg.Secrets.File, logger)
	if err != nil {
		return nil, err
	}
	cfg.AI.APIKey = apiKey
	logger.Debug("API key resolved", logging.F("source", source))

	registry := o.registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := metrics.New(registry)

	c := &Container{
		logger:   logger,
		config:   cfg,
		registry: registry,
		metrics:  m,
	}

	generator := o.generator
	if generator == nil {
		gemini, err := llm.NewGeminiClient(ctx, llm.GeminiOptions{
			APIKey:  apiKey,
			Model:   cfg.AI.Model,
			Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		}, logger)
		if err != nil {
			return nil, err
		}
		c.gemini = gemini
		generator = gemini
	}

	generator = llm.NewRateLimitedGenerator(generator, cfg.AI.RequestsPerMinute)

	if cfg.AI.CircuitBreaker.Enabled {
		c.breaker = llm.NewCircuitBreakerGenerator(generator, llm.BreakerOptions{
			MaxFailures: uint32(cfg.AI.CircuitBreaker.MaxFailures), // #nosec G115 -- validated >= 1
			OpenTimeout: time.Duration(cfg.AI.CircuitBreaker.OpenSeconds) * time.Second,
			OnStateChange: func(from, to string) {
				m.SetBreakerState(to)
				logger.Warn("Model circuit breaker state changed",
					logging.F("from", from), logging.F("to", to))
			},
		})
		m.SetBreakerState(c.breaker.State())
		generator = c.breaker
	}

	c.classifier = classifier.NewClassifier(generator, logger, m)

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldModel, cfg.AI.Model),
		logging.F("requests_per_minute", cfg.AI.RequestsPerMinute),
		logging.F("circuit_breaker", cfg.AI.CircuitBreaker.Enabled))

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClassifier returns the classification service.
func (c *Container) GetClassifier() *classifier.Classifier {
	return c.classifier
}

// GetMetrics returns the Prometheus instrumentation.
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetRegistry returns the registry backing /metrics.
func (c *Container) GetRegistry() *prometheus.Registry {
	return c.registry
}

// BreakerState reports the circuit breaker state, nil when the breaker is disabled.
func (c *Container) BreakerState() func() string {
	if c.breaker == nil {
		return nil
	}
	return c.breaker.State
}

// NewRouter builds the web router on top of the container's dependencies.
func (c *Container) NewRouter() *gin.Engine {
	gin.SetMode(c.config.Server.Mode)
	return web.Setup(web.Dependencies{
		Service:      c.classifier,
		Logger:       c.logger,
		Model:        c.config.AI.Model,
		BreakerState: c.BreakerState(),
		Gatherer:     c.registry,
	})
}

// NewServer builds the HTTP server for the web form.
func (c *Container) NewServer() *server.Server {
	return server.New(c.NewRouter(), server.Options{
		Addr:            c.config.Address(),
		MaxConnections:  c.config.Server.MaxConnections,
		ShutdownTimeout: time.Duration(c.config.Server.ShutdownSeconds) * time.Second,
	}, c.logger)
}

// NewBatchProcessor builds a CSV batch processor.
func (c *Container) NewBatchProcessor() *batch.Processor {
	return batch.NewProcessor(c.classifier, c.logger)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			return fmt.Errorf("failed to close Gemini client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
