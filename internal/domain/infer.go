package domain

import (
	"net/url"
	"strings"
)

// localMarkers are the host fragments that mark an app as locally served.
var localMarkers = []string{"localhost", "127.0.0.1"}

// InferType classifies a URL as TypeLocal when its host contains "localhost"
// or "127.0.0.1" (case-insensitive), and TypeWeb otherwise.
//
// The URL is expected to be valid already. If it cannot be parsed the whole
// string is inspected instead, so the function stays total.
func InferType(rawURL string) Type {
	host := strings.ToLower(rawURL)
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil && u.Host != "" {
		host = strings.ToLower(u.Host)
	}

	for _, marker := range localMarkers {
		if strings.Contains(host, marker) {
			return TypeLocal
		}
	}
	return TypeWeb
}
