package handlers

import (
	"net/http"

	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/models"
	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

type InventoryHandler struct {
	lifecycle *services.LifecycleService
}

func NewInventoryHandler(lifecycle *services.LifecycleService) *InventoryHandler {
	return &InventoryHandler{lifecycle: lifecycle}
}

// Live lists every Inventory-stage game across all locations.
func (h *InventoryHandler) Live(w http.ResponseWriter, r *http.Request) {
	results, err := h.lifecycle.InventoryLive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []models.GameSummary{}
	}
	utils.OK(w, map[string]interface{}{"results": results})
}

// EmergencyLookup reports which location's Inventory holds a key.
func (h *InventoryHandler) EmergencyLookup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Key == "" {
		utils.Fail(w, http.StatusBadRequest, "key is required")
		return
	}

	g, err := h.lifecycle.EmergencyLookup(r.Context(), req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	if g == nil {
		utils.OK(w, map[string]interface{}{"found": false})
		return
	}
	utils.OK(w, map[string]interface{}{"found": true, "fromLocation": g.Location})
}

// EmergencyMove relocates an Inventory game to another location.
func (h *InventoryHandler) EmergencyMove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key        string `json:"key"`
		ToLocation string `json:"toLocation"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Key == "" || req.ToLocation == "" {
		utils.Fail(w, http.StatusBadRequest, "key and toLocation are required")
		return
	}

	result, err := h.lifecycle.EmergencyMove(r.Context(), req.Key, req.ToLocation)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := map[string]interface{}{"moved": result.Moved}
	if result.FromLocation != "" {
		payload["fromLocation"] = result.FromLocation
	}
	if result.ToLocation != "" {
		payload["toLocation"] = result.ToLocation
	}
	if result.Reason != "" {
		payload["reason"] = result.Reason
	}
	if result.Moved {
		cache.InvalidateDashboard(r.Context())
	}
	utils.OK(w, payload)
}
