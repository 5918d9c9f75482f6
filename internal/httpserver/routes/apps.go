package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/mw"
)

func init() { Register(registerApps, Restricted) }

func registerApps(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Get("/tags", handlers.Tags(d))

		api.Route("/apps", func(apps chi.Router) {
			apps.Get("/", handlers.ListApps(d))
			apps.Post("/", handlers.CreateApp(d))

			apps.Get("/export", handlers.Export(d))
			apps.With(mw.RateLimit(mw.RateLimitConfig{
				Burst:             d.ImportRateBurst,
				RefillPerIPPerMin: d.ImportRatePerMin,
				MaxEntries:        1024,
				TrustProxy:        d.TrustProxy,
				Now:               d.Now,
			})).Post("/import", handlers.Import(d))

			apps.Route("/{id}", func(app chi.Router) {
				app.Get("/", handlers.GetApp(d))
				app.Patch("/", handlers.UpdateApp(d))
				app.Delete("/", handlers.DeleteApp(d))
				app.Post("/start", handlers.Start(d))
				app.Get("/status", handlers.Status(d))
			})
		})
	})
}
