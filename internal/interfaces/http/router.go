// Package http assembles the LeadScout HTTP surface: router, middleware
// chain, and server lifecycle.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LeadScout/internal/interfaces/http/handlers"
	"github.com/turtacn/LeadScout/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and infrastructure the route tree
// depends on.
type RouterConfig struct {
	RunHandler    *handlers.RunHandler
	HealthHandler *handlers.HealthHandler

	Metrics *prometheus.Metrics
	Logger  logging.Logger
	Mode    string
}

// NewRouter constructs the complete route tree.  Probes and metrics stay
// outside the API group so they bypass request logging noise.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging(logger, middleware.DefaultLoggingConfig()))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	if cfg.RunHandler != nil {
		runs := api.Group("/runs")
		runs.POST("", cfg.RunHandler.Create)
		runs.GET("/:id/status", cfg.RunHandler.Status)
		runs.GET("/:id/results", cfg.RunHandler.Results)
		runs.GET("/:id/trace", cfg.RunHandler.Trace)
	}

	return r
}

//Personal.AI order the ending
