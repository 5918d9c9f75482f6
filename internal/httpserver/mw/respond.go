package mw

import (
	"net/http"
	"strconv"
)

// deny writes a JSON error body matching the API error shape. Messages are
// fixed strings, so no encoder is needed.
func deny(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":` + strconv.Quote(message) + `,"code":"` + code + `"}` + "\n"))
}
