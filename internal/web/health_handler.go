package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	model        string
	breakerState func() string
}

// NewHealthHandler creates a new health handler. breakerState may be nil when no breaker is used.
func NewHealthHandler(model string, breakerState func() string) *HealthHandler {
	return &HealthHandler{model: model, breakerState: breakerState}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health. The remote model is not probed.
func (h *HealthHandler) Health(c *gin.Context) {
	components := map[string]string{
		"model":           h.model,
		"circuit_breaker": h.state(),
	}

	c.JSON(http.StatusOK, HealthStatus{
		Status:     "healthy",
		Components: components,
	})
}

// Ready handles GET /ready. An open breaker means requests would fail fast.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.state() == "open" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "model circuit breaker open"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) state() string {
	if h.breakerState == nil {
		return "disabled"
	}
	return h.breakerState()
}
