package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/handlers"
)

func init() { Register(registerReadyz, Internal) }

func registerReadyz(r chi.Router, d deps.Deps) {
	r.Get("/readyz", handlers.Readyz(d))
}
