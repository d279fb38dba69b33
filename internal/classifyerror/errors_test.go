package classifyerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Setting: "GOOGLE_API_KEY", Reason: "not set"}
	assert.Equal(t, "configuration error for GOOGLE_API_KEY: not set", err.Error())
	assert.Nil(t, err.Unwrap())

	cause := errors.New("permission denied")
	wrapped := &ConfigurationError{Setting: "secrets.file", Reason: "unreadable", Err: cause}
	assert.Contains(t, wrapped.Error(), "permission denied")
	assert.ErrorIs(t, wrapped, cause)
}

func TestInvocationError(t *testing.T) {
	cause := errors.New("429 quota exceeded")
	err := &InvocationError{Model: "gemini-1.5-flash", Err: cause}

	assert.Equal(t, "model invocation failed (gemini-1.5-flash): 429 quota exceeded", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "model invocation failed: 429 quota exceeded", (&InvocationError{Err: cause}).Error())
}

func TestKindPredicates(t *testing.T) {
	cfg := fmt.Errorf("startup: %w", &ConfigurationError{Setting: "x", Reason: "y"})
	inv := fmt.Errorf("request: %w", &InvocationError{Err: errors.New("down")})

	assert.True(t, IsConfigurationError(cfg))
	assert.False(t, IsConfigurationError(inv))
	assert.True(t, IsInvocationError(inv))
	assert.False(t, IsInvocationError(ErrEmptyComplaint))
}
