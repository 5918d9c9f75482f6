package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

// Reload triggers a homepage import without waiting for it.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeError(w, http.StatusNotFound, "Homepage import is not configured", "NOT_CONFIGURED", nil)
			return
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual homepage import triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, successResponse{Success: true, Message: "Reload triggered"})
		default:
			d.Logger.Warn("homepage import already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "Reload already in progress, please wait", "RELOAD_PENDING", nil)
		}
	}
}
