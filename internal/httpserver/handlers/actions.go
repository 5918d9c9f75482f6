package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/launcher"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

// Start launches the app's local server through the launcher.
func Start(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Launcher == nil || !d.Launcher.Enabled() {
			writeError(w, http.StatusForbidden, "Starting apps is disabled", "START_DISABLED", nil)
			return
		}

		app, err := d.Store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to fetch app", "FETCH_ERROR")
			return
		}

		err = d.Launcher.Start(app)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, successResponse{
				Success: true,
				Message: fmt.Sprintf("Started server for %s", app.Name),
			})
		case errors.Is(err, launcher.ErrDisabled):
			writeError(w, http.StatusForbidden, "Starting apps is disabled", "START_DISABLED", nil)
		case errors.Is(err, launcher.ErrNoCommand):
			writeError(w, http.StatusBadRequest, "No start command configured for this app", "NO_COMMAND", nil)
		case errors.Is(err, launcher.ErrCommandNotFound):
			writeError(w, http.StatusNotFound,
				fmt.Sprintf("Start command file not found at: %s", app.StartCommand), "FILE_NOT_FOUND", nil)
		default:
			d.Logger.Error("failed to start app", logger.String("id", app.ID), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to start server", "START_ERROR", err.Error())
		}
	}
}

type statusResponse struct {
	ID string `json:"id"`
	domain.ProbeResult
}

// Status probes the app URL and reports whether it answers.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app, err := d.Store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to fetch app", "FETCH_ERROR")
			return
		}

		res := domain.Probe(r.Context(), app.URL, d.ProbeTimeout, d.SkipTLSProbe)
		writeJSON(w, http.StatusOK, statusResponse{ID: app.ID, ProbeResult: res})
	}
}
