package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

// maxBodyBytes caps request bodies; an import of a few thousand apps fits easily.
const maxBodyBytes = 4 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string, details any) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code, Details: details})
}

// writeStoreError maps a store error to its HTTP response. failMsg and
// failCode describe the operation for unexpected failures.
func writeStoreError(w http.ResponseWriter, log logger.Logger, err error, failMsg, failCode string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", ve.Issues)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "App not found", "NOT_FOUND", nil)
	default:
		log.Error(failMsg, logger.Error(err))
		writeError(w, http.StatusInternalServerError, failMsg, failCode, nil)
	}
}

// decodeJSON reads a single JSON value from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// writeBadBody answers a body that is not valid JSON for the operation.
func writeBadBody(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, "Invalid request body", "VALIDATION_ERROR",
		[]domain.Issue{{Field: "body", Message: err.Error()}})
}

// NotFound answers unknown routes with the API error shape.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found", "ROUTE_NOT_FOUND", nil)
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED", nil)
}
