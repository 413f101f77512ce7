package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// OK writes the standard success envelope, merging the payload's keys
// next to "ok": true.
func OK(w http.ResponseWriter, payload map[string]interface{}) {
	body := map[string]interface{}{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	JSON(w, http.StatusOK, body)
}

// Fail writes the standard error envelope.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]interface{}{"ok": false, "error": msg})
}
