package handlers

import (
	"encoding/json"
	"net/http"

	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary serves the landing-page aggregate, short-TTL cached in
// Redis.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCachedDashboard(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	body := map[string]interface{}{
		"ok":             true,
		"closedCounts":   summary.ClosedCounts,
		"depositPending": summary.DepositPending,
	}
	if data, err := json.Marshal(body); err == nil {
		cache.CacheDashboard(r.Context(), data)
	}
	utils.JSON(w, http.StatusOK, body)
}
