package handlers

import (
	"net/http"

	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

type GameHandler struct {
	lifecycle *services.LifecycleService
}

func NewGameHandler(lifecycle *services.LifecycleService) *GameHandler {
	return &GameHandler{lifecycle: lifecycle}
}

// Find searches Open, Inventory, then Closed across all locations
// for a key.
func (h *GameHandler) Find(w http.ResponseWriter, r *http.Request) {
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

	stage, g, err := h.lifecycle.FindGame(r.Context(), req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	if g == nil {
		utils.OK(w, map[string]interface{}{"found": false})
		return
	}
	utils.OK(w, map[string]interface{}{"found": true, "stage": stage, "row": g})
}
