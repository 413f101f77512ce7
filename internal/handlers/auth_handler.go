package handlers

import (
	"net/http"

	"gametrack-backend/internal/middleware"
	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login checks operator credentials and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	token, op, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, map[string]interface{}{
		"token": token,
		"operator": map[string]interface{}{
			"id":       op.ID,
			"username": op.Username,
			"name":     op.Name,
			"email":    op.Email,
		},
	})
}

// Me resolves the operator behind a Bearer token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	if claims == nil {
		utils.Fail(w, http.StatusUnauthorized, "missing session")
		return
	}

	op, err := h.auth.Me(r.Context(), claims)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, map[string]interface{}{
		"operator": map[string]interface{}{
			"id":       op.ID,
			"username": op.Username,
			"name":     op.Name,
			"email":    op.Email,
		},
	})
}
