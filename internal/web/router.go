// Package web serves the complaint classifier page and its JSON API over gin.
package web

import (
	"fjacquet/complaint-classifier/internal/classifier"
	"fjacquet/complaint-classifier/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the collaborators the router needs.
type Dependencies struct {
	Service      classifier.Service
	Logger       logging.Logger
	Model        string
	BreakerState func() string
	// Gatherer backs /metrics; nil serves the default registry.
	Gatherer prometheus.Gatherer
}

// Setup creates and configures the gin router
func Setup(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(RequestID())
	router.Use(Logger(deps.Logger))
	router.Use(Recovery(deps.Logger))

	router.SetHTMLTemplate(pageTemplates())

	healthHandler := NewHealthHandler(deps.Model, deps.BreakerState)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	} else {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	pageHandler := NewPageHandler(deps.Service, deps.Logger)
	router.GET("/", pageHandler.Index)
	router.POST("/classify", pageHandler.Classify)

	apiHandler := NewAPIHandler(deps.Service)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/classify", apiHandler.Classify)
	}

	return router
}
