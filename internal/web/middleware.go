package web

import (
	"net/http"
	"time"

	"fjacquet/complaint-classifier/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request identifier in and out.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key holding the request identifier.
const requestIDKey = "request_id"

// RequestID reuses the caller's X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Logger writes one access log line per request; 4xx as warning, 5xx as error.
func Logger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(
			logging.F(logging.FieldRequestID, c.GetString(requestIDKey)),
			logging.F(logging.FieldMethod, c.Request.Method),
			logging.F(logging.FieldPath, c.Request.URL.Path),
			logging.F(logging.FieldStatus, status),
			logging.F(logging.FieldClientIP, c.ClientIP()),
			logging.F(logging.FieldDuration, time.Since(start).Milliseconds()),
		)

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request served")
		}
	}
}

// Recovery turns a handler panic into a 500 response instead of killing the process.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Recovered from panic",
					logging.F(logging.FieldRequestID, c.GetString(requestIDKey)),
					logging.F("panic", r))
				respondError(c, http.StatusInternalServerError, codeInternal, "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
