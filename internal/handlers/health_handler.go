package handlers

import (
	"net/http"

	"gametrack-backend/internal/health"
	"gametrack-backend/internal/timeutil"
	"gametrack-backend/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health is the public liveness endpoint.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.OK(w, map[string]interface{}{"time": timeutil.Stamp(timeutil.Now())})
}

// Readiness checks the backing stores, for orchestrator probes.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	status := h.checker.Check(r.Context())

	// degraded means redis is down; the service still serves traffic
	code := http.StatusOK
	if status.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}
