package web

import (
	"net/http"

	"fjacquet/complaint-classifier/internal/classifier"

	"github.com/gin-gonic/gin"
)

// ClassifyInput is the JSON body of POST /api/v1/classify.
type ClassifyInput struct {
	Complaint string `json:"complaint"`
}

// ClassifyOutput is the data payload of a successful classification.
type ClassifyOutput struct {
	Category string `json:"category"`
}

// APIHandler exposes classification as JSON.
type APIHandler struct {
	service classifier.Service
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(service classifier.Service) *APIHandler {
	return &APIHandler{service: service}
}

// Classify handles POST /api/v1/classify
func (h *APIHandler) Classify(c *gin.Context) {
	var input ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	result, err := h.service.Classify(c.Request.Context(), classifier.ClassificationRequest{ComplaintText: input.Complaint})
	if err != nil {
		errResp := MapClassifyError(err)
		respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
		return
	}

	respondSuccess(c, http.StatusOK, ClassifyOutput{Category: result.Category})
}
