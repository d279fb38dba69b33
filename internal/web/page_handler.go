package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"fjacquet/complaint-classifier/internal/classifier"
	"fjacquet/complaint-classifier/internal/classifyerror"
	"fjacquet/complaint-classifier/internal/logging"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageTitle             = "Customer Complaint Classifier"
	emptyComplaintWarning = "Please enter a complaint to classify."
	complaintField        = "complaint"
)

// Panel states rendered below the form.
const (
	statusSuccess = "success"
	statusWarning = "warning"
	statusError   = "error"
)

// PageData is the view model of the classifier page.
type PageData struct {
	Title     string
	Complaint string
	Status    string
	Category  string
	Message   string
}

// pageTemplates parses the embedded page templates.
func pageTemplates() *template.Template {
	return template.Must(template.New("pages").ParseFS(templatesFS, "templates/*.html"))
}

// PageHandler serves the single-page complaint form.
type PageHandler struct {
	service classifier.Service
	logger  logging.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(service classifier.Service, logger logging.Logger) *PageHandler {
	return &PageHandler{service: service, logger: logger}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", PageData{Title: pageTitle})
}

// Classify handles POST /classify.
// Every outcome re-renders the page with 200; failures are shown inline.
func (h *PageHandler) Classify(c *gin.Context) {
	complaint := c.PostForm(complaintField)
	data := PageData{Title: pageTitle, Complaint: complaint}

	result, err := h.service.Classify(c.Request.Context(), classifier.ClassificationRequest{ComplaintText: complaint})
	switch {
	case err == nil:
		data.Status = statusSuccess
		data.Category = result.Category
	case errors.Is(err, classifyerror.ErrEmptyComplaint):
		data.Status = statusWarning
		data.Message = emptyComplaintWarning
	default:
		h.logger.WithError(err).Warn("Classification failed",
			logging.F(logging.FieldRequestID, c.GetString(requestIDKey)))
		data.Status = statusError
		data.Message = "An error occurred: " + err.Error()
	}

	c.HTML(http.StatusOK, "index.html", data)
}
