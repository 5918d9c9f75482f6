package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	AppsStored *int   `json:"apps_stored,omitempty"`
	LastRun    string `json:"last_run,omitempty"`
	Imported   *int   `json:"imported,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the store, its backend and the homepage importer.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		components := map[string]componentStatus{
			"store": checkStore(ctx, d),
		}
		if d.RedisClient != nil {
			components["redis"] = checkRedis(ctx, d)
		}
		if d.Homepage != nil {
			components["homepage"] = checkHomepage(d)
		}
		components["launcher"] = componentStatus{OK: true, Mode: launcherMode(d)}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

// overallStatus is "critical" when the store is unusable, "degraded" when
// any other component fails, "ok" otherwise.
func overallStatus(components map[string]componentStatus) string {
	if !components["store"].OK {
		return "critical"
	}
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "ok"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	apps, err := d.Store.List(ctx)
	if err != nil {
		return componentStatus{OK: false, Mode: d.Store.BackendName(), Error: err.Error()}
	}
	n := len(apps)
	return componentStatus{OK: true, Mode: d.Store.BackendName(), AppsStored: &n}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true}
}

func checkHomepage(d deps.Deps) componentStatus {
	last := d.Homepage.LastRun()
	if last == nil {
		return componentStatus{OK: true, LastRun: "never"}
	}
	imported := last.Result.Imported
	return componentStatus{
		OK:       last.Error == "",
		LastRun:  last.At.Format(time.RFC3339),
		Imported: &imported,
		Error:    last.Error,
	}
}

func launcherMode(d deps.Deps) string {
	if d.Launcher != nil && d.Launcher.Enabled() {
		return "enabled"
	}
	return "disabled"
}
