package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gametrack-backend/internal/services"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrInvalidInput, http.StatusBadRequest},
		{services.ErrMixedLocations, http.StatusBadRequest},
		{services.ErrNoLocationDetermined, http.StatusBadRequest},
		{services.ErrNoUsableRows, http.StatusBadRequest},
		{services.ErrInvalidScan, http.StatusBadRequest},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrUnauthorized, http.StatusUnauthorized},
		{services.ErrAlreadyComplete, http.StatusConflict},
		{errors.New("pool exhausted"), http.StatusInternalServerError},
		// wrapped errors keep their mapping
		{fmt.Errorf("%w: box must be 1-7", services.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("open: %w", services.ErrNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
