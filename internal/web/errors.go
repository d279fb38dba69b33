package web

import (
	"errors"
	"net/http"

	"fjacquet/complaint-classifier/internal/classifyerror"
)

// API error codes.
const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeEmptyComplaint = "EMPTY_COMPLAINT"
	codeInvocation     = "INVOCATION_ERROR"
	codeInternal       = "INTERNAL_ERROR"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapClassifyError maps classification errors to HTTP error responses.
// Invocation failures keep their detail so the caller sees why the model call failed.
func MapClassifyError(err error) ErrorResponse {
	var invErr *classifyerror.InvocationError
	switch {
	case errors.Is(err, classifyerror.ErrEmptyComplaint):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       codeEmptyComplaint,
			Message:    emptyComplaintWarning,
		}
	case errors.As(err, &invErr):
		return ErrorResponse{
			StatusCode: http.StatusBadGateway,
			Code:       codeInvocation,
			Message:    invErr.Error(),
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       codeInternal,
			Message:    "internal server error",
		}
	}
}
