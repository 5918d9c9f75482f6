package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

type importRequest struct {
	Apps     []domain.CreateInput `json:"apps"`
	Strategy string               `json:"strategy"`
}

type importResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
	Skipped  int  `json:"skipped"`
}

// ExportFilename names the download for a given day.
func ExportFilename(day string) string {
	return fmt.Sprintf("appdeck-apps-export-%s.json", day)
}

// Export returns the full collection as a pretty-printed attachment.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps, err := d.Store.Export(r.Context())
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to export apps", "EXPORT_ERROR")
			return
		}

		data, err := json.MarshalIndent(appsResponse{Apps: apps}, "", "  ")
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to export apps", "EXPORT_ERROR")
			return
		}

		day := d.Now().UTC().Format("2006-01-02")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename(day)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}

// Import merges a batch of apps. The strategy defaults to skip.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeBadBody(w, err)
			return
		}
		if req.Apps == nil {
			writeError(w, http.StatusBadRequest, "Invalid import data", "VALIDATION_ERROR",
				[]domain.Issue{{Field: "apps", Message: "Required"}})
			return
		}

		strategy, ok := domain.ParseStrategy(req.Strategy)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid import data", "VALIDATION_ERROR",
				[]domain.Issue{{Field: "strategy", Message: "must be skip or replace"}})
			return
		}

		res, err := d.Store.Import(r.Context(), req.Apps, strategy)
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to import apps", "IMPORT_ERROR")
			return
		}

		writeJSON(w, http.StatusOK, importResponse{Success: true, Imported: res.Imported, Skipped: res.Skipped})
	}
}
