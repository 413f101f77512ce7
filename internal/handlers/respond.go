package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

// statusFor maps service errors onto HTTP statuses. Anything outside
// the known taxonomy is a store failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrMixedLocations),
		errors.Is(err, services.ErrNoLocationDetermined),
		errors.Is(err, services.ErrNoUsableRows),
		errors.Is(err, services.ErrInvalidScan):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAlreadyComplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	utils.Fail(w, statusFor(err), err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
