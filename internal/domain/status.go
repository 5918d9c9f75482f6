package domain

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/appdeck/internal/utils"
)

// ProbeResult describes whether an app URL answered a HEAD request.
type ProbeResult struct {
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"status_code,omitempty"`
	LatencyMS  int64  `json:"latency_ms"`
	Error      string `json:"error,omitempty"`
}

// Probe sends a HEAD request to rawURL and reports whether anything answered.
// Any HTTP response, whatever its status, counts as reachable.
func Probe(ctx context.Context, rawURL string, timeout time.Duration, skipTLSVerify bool) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 0,
				}).DialContext(ctx, network, addr)
			},
			TLSHandshakeTimeout: timeout,
			TLSClientConfig: &tls.Config{
				MinVersion:         tls.VersionTLS12,
				InsecureSkipVerify: skipTLSVerify, //nolint:gosec // local dev servers use self-signed certs
			},
			DisableKeepAlives: true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// A redirect is an answer
			return http.ErrUseLastResponse
		},
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, http.NoBody)
	if err != nil {
		return ProbeResult{Error: fmt.Sprintf("failed to create request: %v", err)}
	}

	resp, err := client.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return ProbeResult{LatencyMS: latency, Error: err.Error()}
	}
	defer utils.Close(resp.Body)

	return ProbeResult{
		Reachable:  true,
		StatusCode: resp.StatusCode,
		LatencyMS:  latency,
	}
}
