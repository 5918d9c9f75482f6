package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/utils"
)

// AllowOnlyCIDRS admits only callers whose address matches one of the allowed
// IPs or CIDRs. An empty or fully unparsable list disables the check.
// trustProxy should be true when running behind a trusted reverse proxy/tunnel (e.g., cloudflared).
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Debug("AllowOnlyCIDRS: no rules, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("AllowOnlyCIDRS: enabled",
		logger.Int("rules", m.Len()),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debug("AllowOnlyCIDRS: rejected",
					logger.String("ip", ip),
					logger.String("remote_addr", r.RemoteAddr),
					logger.String("path", r.URL.Path))
				deny(w, http.StatusForbidden, "Address not allowed", "FORBIDDEN")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
