package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/handlers"
)

// liveness stays open so container runtimes can always reach it
func init() { Register(registerHealthz, Public) }

func registerHealthz(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
}
