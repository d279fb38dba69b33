// Package classifyerror defines the error kinds surfaced by the complaint classifier.
package classifyerror

import (
	"errors"
	"fmt"
)

// ErrEmptyComplaint is returned when a classification is requested for empty text.
// It is a validation warning: no remote call is made.
var ErrEmptyComplaint = errors.New("complaint text is empty")

// ConfigurationError represents missing or invalid configuration detected at startup.
// It is fatal: the application must not accept input while it is unresolved.
type ConfigurationError struct {
	Setting string
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error for %s: %s: %v", e.Setting, e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error for %s: %s", e.Setting, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// InvocationError represents any failure while calling the remote model
// (network, auth, quota, malformed response). It is terminal for one request only.
type InvocationError struct {
	Model string
	Err   error
}

func (e *InvocationError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("model invocation failed: %v", e.Err)
	}
	return fmt.Sprintf("model invocation failed (%s): %v", e.Model, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsInvocationError reports whether err is or wraps an InvocationError.
func IsInvocationError(err error) bool {
	var invErr *InvocationError
	return errors.As(err, &invErr)
}
