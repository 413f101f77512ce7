package handlers

import (
	"net/http"

	"gametrack-backend/internal/models"
	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

type OfficeHandler struct {
	scans *services.OfficeScanService
}

func NewOfficeHandler(scans *services.OfficeScanService) *OfficeHandler {
	return &OfficeHandler{scans: scans}
}

// Find returns an office intake record and the scan step it awaits.
func (h *OfficeHandler) Find(w http.ResponseWriter, r *http.Request) {
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

	rec, step, err := h.scans.Find(r.Context(), req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, map[string]interface{}{"found": true, "row": rec, "step": step})
}

// Scan applies one scanned value to a record's next gated step.
func (h *OfficeHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key          string `json:"key"`
		ScannedValue string `json:"scannedValue"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Key == "" || req.ScannedValue == "" {
		utils.Fail(w, http.StatusBadRequest, "key and scannedValue are required")
		return
	}

	outcome, err := h.scans.Scan(r.Context(), req.Key, req.ScannedValue)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, map[string]interface{}{"updated": true, "step": outcome.Step})
}

// List returns every record currently in office intake.
func (h *OfficeHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.scans.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []models.OfficeRecord{}
	}
	utils.OK(w, map[string]interface{}{"results": results})
}
