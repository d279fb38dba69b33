package container

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"fjacquet/complaint-classifier/internal/classifier"
	"fjacquet/complaint-classifier/internal/classifyerror"
	"fjacquet/complaint-classifier/internal/config"
	"fjacquet/complaint-classifier/internal/llm"
	"fjacquet/complaint-classifier/internal/logging"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		AI: config.AIConfig{
			Model: llm.DefaultModel,
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures: 2,
				OpenSeconds: 60,
			},
		},
		Server: config.ServerConfig{Port: 8501, Mode: "test", MaxConnections: 8, ShutdownSeconds: 1},
		// Never pick up a real secrets file from the working directory.
		Secrets: config.SecretsConfig{File: filepath.Join(t.TempDir(), "secrets.toml")},
	}
}

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration cannot be nil")
}

func TestNewContainer_MissingCredentialHalts(t *testing.T) {
	t.Setenv(config.APIKeyEnvVar, "")
	calls := 0
	gen := llm.GenerateFunc(func(context.Context, string) (string, error) {
		calls++
		return "Billing Issue", nil
	})

	c, err := NewContainer(context.Background(), testConfig(t),
		WithLogger(logging.NewMockLogger()), WithGenerator(gen))

	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, classifyerror.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "Google API Key not found")
	assert.Zero(t, calls)
}

func TestNewContainer_WiresClassifier(t *testing.T) {
	t.Setenv(config.APIKeyEnvVar, "test-key")
	gen := llm.GenerateFunc(func(context.Context, string) (string, error) {
		return "  Product Feedback\n", nil
	})
	cfg := testConfig(t)

	c, err := NewContainer(context.Background(), cfg,
		WithLogger(logging.NewMockLogger()), WithGenerator(gen))
	require.NoError(t, err)
	defer func() { assert.NoError(t, c.Close()) }()

	assert.Equal(t, "test-key", c.GetConfig().AI.APIKey)
	assert.Nil(t, c.BreakerState())

	result, err := c.GetClassifier().Classify(context.Background(),
		classifier.ClassificationRequest{ComplaintText: "Love the new colours"})
	require.NoError(t, err)
	assert.Equal(t, "Product Feedback", result.Category)

	count, err := testutil.GatherAndCount(c.GetRegistry(), "complaint_classifier_classifications_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewContainer_CircuitBreakerOpens(t *testing.T) {
	t.Setenv(config.APIKeyEnvVar, "test-key")
	calls := 0
	gen := llm.GenerateFunc(func(context.Context, string) (string, error) {
		calls++
		return "", errors.New("503 service unavailable")
	})
	cfg := testConfig(t)
	cfg.AI.CircuitBreaker.Enabled = true
	logger := logging.NewMockLogger()

	c, err := NewContainer(context.Background(), cfg, WithLogger(logger), WithGenerator(gen))
	require.NoError(t, err)

	req := classifier.ClassificationRequest{ComplaintText: "Site is down"}
	for i := 0; i < 3; i++ {
		_, err := c.GetClassifier().Classify(context.Background(), req)
		assert.True(t, classifyerror.IsInvocationError(err))
	}

	assert.Equal(t, 2, calls, "open breaker must fail fast")
	require.NotNil(t, c.BreakerState())
	assert.Equal(t, "open", c.BreakerState()())
	assert.True(t, logger.HasEntry("WARN", "Model circuit breaker state changed"))
}

func TestContainer_RouterServesPage(t *testing.T) {
	t.Setenv(config.APIKeyEnvVar, "test-key")
	gen := llm.GenerateFunc(func(context.Context, string) (string, error) { return "Billing Issue", nil })

	c, err := NewContainer(context.Background(), testConfig(t),
		WithLogger(logging.NewMockLogger()), WithGenerator(gen))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c.NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Customer Complaint Classifier")
	assert.NotNil(t, c.NewServer())
	assert.NotNil(t, c.NewBatchProcessor())
}
