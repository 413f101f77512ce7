package handlers

import (
	"net/http"

	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/models"
	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

type PickupHandler struct {
	lifecycle *services.LifecycleService
}

func NewPickupHandler(lifecycle *services.LifecycleService) *PickupHandler {
	return &PickupHandler{lifecycle: lifecycle}
}

// List groups closed games by location for the pickup screen.
func (h *PickupHandler) List(w http.ResponseWriter, r *http.Request) {
	byLocation, err := h.lifecycle.PickupList(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, map[string]interface{}{"byLocation": byLocation})
}

// Confirm moves the selected closed games into transportation under
// the named picker. Per-item failures are reported, not fatal.
func (h *PickupHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Picker string              `json:"picker"`
		Keys   []models.PickupItem `json:"keys"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Picker == "" || len(req.Keys) == 0 {
		utils.Fail(w, http.StatusBadRequest, "picker and keys are required")
		return
	}

	result, err := h.lifecycle.ConfirmPickup(r.Context(), req.Picker, req.Keys)
	if err != nil {
		writeError(w, err)
		return
	}

	if result.Moved > 0 {
		cache.InvalidateDashboard(r.Context())
	}
	utils.OK(w, map[string]interface{}{
		"picker": result.Picker,
		"moved":  result.Moved,
		"errors": result.Errors,
	})
}
