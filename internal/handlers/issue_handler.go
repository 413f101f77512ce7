package handlers

import (
	"net/http"

	"gametrack-backend/internal/models"
	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

type IssueHandler struct {
	issues *services.IssueService
}

func NewIssueHandler(issues *services.IssueService) *IssueHandler {
	return &IssueHandler{issues: issues}
}

func (h *IssueHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key"`
		Issue string `json:"issue"`
	}
	if !decode(w, r, &req) {
		return
	}

	issue, err := h.issues.Add(r.Context(), req.Key, req.Issue)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, map[string]interface{}{"id": issue.ID})
}

// List returns issues newest first, optionally filtered by the "key"
// query parameter.
func (h *IssueHandler) List(w http.ResponseWriter, r *http.Request) {
	issues, err := h.issues.List(r.Context(), r.URL.Query().Get("key"))
	if err != nil {
		writeError(w, err)
		return
	}
	if issues == nil {
		issues = []models.Issue{}
	}
	utils.OK(w, map[string]interface{}{"issues": issues})
}

// Fix hard-deletes a resolved issue by id.
func (h *IssueHandler) Fix(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		utils.Fail(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.issues.Fix(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, nil)
}
