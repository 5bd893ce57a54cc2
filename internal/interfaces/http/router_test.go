package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LeadScout/internal/interfaces/http/handlers"
)

func TestNewRouter_ProbesAndMetrics(t *testing.T) {
	metrics := prometheus.New()
	metrics.RecordRunStarted()

	router := NewRouter(RouterConfig{
		HealthHandler: handlers.NewHealthHandler("test"),
		Metrics:       metrics,
		Mode:          "test",
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "leadscout_runs_started_total 1")
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	router := NewRouter(RouterConfig{Mode: "test"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

//Personal.AI order the ending
