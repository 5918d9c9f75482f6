package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/handlers"
)

// POST /reload triggers a homepage import outside the schedule
func init() { Register(registerReload, Restricted) }

func registerReload(r chi.Router, d deps.Deps) {
	r.Post("/reload", handlers.Reload(d))
}
