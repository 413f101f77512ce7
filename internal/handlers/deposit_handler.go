package handlers

import (
	"context"
	"fmt"
	"net/http"

	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/models"
	"gametrack-backend/internal/services"
	"gametrack-backend/internal/timeutil"
	"gametrack-backend/pkg/utils"
)

type DepositHandler struct {
	lifecycle *services.LifecycleService
	reports   *services.ReportService
}

func NewDepositHandler(lifecycle *services.LifecycleService, reports *services.ReportService) *DepositHandler {
	return &DepositHandler{lifecycle: lifecycle, reports: reports}
}

// List returns the full deposit queue.
func (h *DepositHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.lifecycle.ListDeposits(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []models.DepositRecord{}
	}
	utils.OK(w, map[string]interface{}{"results": results})
}

// ToBank stamps the going-to-bank phase on the listed keys. Keys
// already staged or completed are skipped.
func (h *DepositHandler) ToBank(w http.ResponseWriter, r *http.Request) {
	h.bankPhase(w, r, h.lifecycle.SendToBank)
}

// AtBank stamps the dropped-at-bank phase, only effective after
// ToBank.
func (h *DepositHandler) AtBank(w http.ResponseWriter, r *http.Request) {
	h.bankPhase(w, r, h.lifecycle.ConfirmAtBank)
}

func (h *DepositHandler) bankPhase(w http.ResponseWriter, r *http.Request, apply func(context.Context, []string) error) {
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

	if err := apply(r.Context(), req.Keys); err != nil {
		writeError(w, err)
		return
	}
	cache.InvalidateDashboard(r.Context())
	utils.OK(w, nil)
}

// Report renders the deposit queue as a PDF.
func (h *DepositHandler) Report(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.DepositReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="deposit_report_%s.pdf"`, timeutil.Now().Format("20060102")))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
