package handlers

import (
	"net/http"
	"strings"

	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/models"
	"gametrack-backend/internal/timeutil"
	"gametrack-backend/pkg/utils"
)

// SignInHandler keeps the kiosk sign-in roster in the key-value
// store.
type SignInHandler struct{}

func NewSignInHandler() *SignInHandler {
	return &SignInHandler{}
}

// SignIn appends one roster entry.
func (h *SignInHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		utils.Fail(w, http.StatusBadRequest, "name and email are required")
		return
	}

	entry := models.SignInEntry{
		Name:      req.Name,
		Email:     req.Email,
		Timestamp: timeutil.Now().UnixMilli(),
	}
	if err := cache.RecordSignIn(r.Context(), entry); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "could not record sign-in")
		return
	}
	utils.OK(w, map[string]interface{}{"timestamp": entry.Timestamp})
}

// Logs lists roster entries newest first.
func (h *SignInHandler) Logs(w http.ResponseWriter, r *http.Request) {
	entries, err := cache.ListSignIns(r.Context())
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "could not read sign-in log")
		return
	}
	utils.OK(w, map[string]interface{}{"logs": entries})
}
