package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/mw"
)

// Registrar mounts a group of routes.
type Registrar func(r chi.Router, d deps.Deps)

// Access selects the guards placed in front of a route group.
type Access int

const (
	// Public routes are always reachable.
	Public Access = iota
	// Internal routes require an allowed client address.
	Internal
	// Restricted routes require an allowed client address and Host header.
	Restricted
)

func (a Access) middlewares(d deps.Deps) []func(http.Handler) http.Handler {
	switch a {
	case Internal:
		return []func(http.Handler) http.Handler{
			mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		}
	case Restricted:
		return []func(http.Handler) http.Handler{
			mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
			mw.EnforceHost(d.AllowedHosts, d.Logger),
		}
	default:
		return nil
	}
}

type entry struct {
	reg    Registrar
	access Access
}

var registry []entry

// Register adds a route group. Called from init() in each route file.
func Register(reg Registrar, access Access) {
	registry = append(registry, entry{reg: reg, access: access})
}

// RegisterAll mounts every registered group behind its guards.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		mws := e.access.middlewares(d)
		if len(mws) == 0 {
			e.reg(r, d)
			continue
		}
		r.Group(func(g chi.Router) {
			g.Use(mws...)
			e.reg(g, d)
		})
	}
}
