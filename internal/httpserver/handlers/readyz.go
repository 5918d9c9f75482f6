package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz answers 200 once the backing document can be loaded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		if err := d.Store.Check(ctx); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
