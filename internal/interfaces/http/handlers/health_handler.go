package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout bounds the total time spent probing dependencies.
const readinessTimeout = 5 * time.Second

// HealthChecker is implemented by infrastructure components that can report
// their own connectivity.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers []HealthChecker
	version  string
	startAt  time.Time
}

func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		version:  version,
		startAt:  time.Now(),
	}
}

// LivenessResponse is the body of a liveness probe.
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse aggregates per-component probe results.
type ReadinessResponse struct {
	Status     string                    `json:"status"`
	Components map[string]ComponentCheck `json:"components,omitempty"`
}

// ComponentCheck is the probe result of a single component.
type ComponentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness confirms the process is running.  It never checks dependencies.
//
// GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.startAt).Round(time.Second).String(),
	})
}

// Readiness probes every registered component concurrently.  Any failure
// returns 503 so the instance is pulled from rotation.
//
// GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	components := make(map[string]ComponentCheck, len(h.checkers))
	var mu sync.Mutex
	var wg sync.WaitGroup
	healthy := true

	for _, checker := range h.checkers {
		wg.Add(1)
		go func(hc HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := hc.Check(ctx)
			check := ComponentCheck{
				Status:  "up",
				Latency: time.Since(start).Round(time.Millisecond).String(),
			}
			if err != nil {
				check.Status = "down"
				check.Error = err.Error()
			}
			mu.Lock()
			components[hc.Name()] = check
			if err != nil {
				healthy = false
			}
			mu.Unlock()
		}(checker)
	}
	wg.Wait()

	resp := ReadinessResponse{Status: "ready", Components: components}
	status := http.StatusOK
	if !healthy {
		resp.Status = "not ready"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

//Personal.AI order the ending
