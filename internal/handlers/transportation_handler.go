package handlers

import (
	"net/http"

	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/models"
	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

type TransportationHandler struct {
	lifecycle *services.LifecycleService
}

func NewTransportationHandler(lifecycle *services.LifecycleService) *TransportationHandler {
	return &TransportationHandler{lifecycle: lifecycle}
}

// Live lists games currently in transit.
func (h *TransportationHandler) Live(w http.ResponseWriter, r *http.Request) {
	results, err := h.lifecycle.ListTransportation(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []models.TransportationRecord{}
	}
	utils.OK(w, map[string]interface{}{"results": results})
}

// DropOff moves the listed keys from transit into the office. Keys
// not in transit are skipped.
func (h *TransportationHandler) DropOff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keys []string `json:"keys"`
	}
	if !decode(w, r, &req) {
		return
	}
	if len(req.Keys) == 0 {
		utils.Fail(w, http.StatusBadRequest, "keys are required")
		return
	}

	if err := h.lifecycle.DropOff(r.Context(), req.Keys); err != nil {
		writeError(w, err)
		return
	}
	cache.InvalidateDashboard(r.Context())
	utils.OK(w, nil)
}
