package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/logger"
)

const (
	// ReadinessTimeout bounds all readiness probes together
	ReadinessTimeout = 2 * time.Second

	// CheckSnapshotStore names the snapshot store probe in /readyz output
	CheckSnapshotStore = "snapshot_store"

	statusOK          = "ok"
	statusUnavailable = "unavailable"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Pinger is implemented by every snapshot store that can report connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessCheck is one named dependency probed by /readyz
type ReadinessCheck struct {
	Name  string
	Probe Pinger
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the process is serving
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: statusOK})
	}
}

// HandleReadyz runs every check and fails if any of them does. Failure details go to
// the log only; the response names the failing check.
// @Summary Readiness check
// @Description Returns OK when every dependency (the snapshot store) is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		resp := HealthResponse{Status: statusOK, Checks: make(map[string]string, len(checks))}
		for _, c := range checks {
			if err := c.Probe.Ping(ctx); err != nil {
				logger.FromContext(ctx).Error("Readiness check failed", "check", c.Name, "error", err)
				resp.Status = statusUnavailable
				resp.Checks[c.Name] = statusUnavailable
				continue
			}
			resp.Checks[c.Name] = statusOK
		}

		status := http.StatusOK
		if resp.Status != statusOK {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, resp)
	}
}
