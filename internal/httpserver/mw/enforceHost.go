package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/utils"
)

// EnforceHost admits requests whose Host header, port excluded, matches one
// of allowedHosts. Patterns like "*.example.com" match any subdomain but not
// the apex. Matching is case-insensitive. An empty list disables the check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			patterns = append(patterns, h)
		}
	}
	if len(patterns) == 0 {
		log.Debug("EnforceHost: no hosts, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("EnforceHost: enabled", logger.Strings("hosts", patterns))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(utils.ParseHostNoPort(r.Host))
			for _, pattern := range patterns {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Debug("EnforceHost: rejected", logger.String("host", r.Host))
			deny(w, http.StatusForbidden, "Host not allowed", "FORBIDDEN")
		})
	}
}

func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return len(host) > len(suffix) && strings.HasSuffix(host, suffix)
	}
	return false
}
