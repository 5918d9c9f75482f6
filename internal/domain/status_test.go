package domain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProbe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		w.WriteHeader(http.StatusTeapot)
	}))
	defer ts.Close()

	res := Probe(context.Background(), ts.URL, time.Second, false)
	if !res.Reachable {
		t.Fatalf("Probe() reachable = false, error = %s", res.Error)
	}
	if res.StatusCode != http.StatusTeapot {
		t.Errorf("StatusCode = %d, want %d", res.StatusCode, http.StatusTeapot)
	}
}

func TestProbeSelfSignedTLS(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	if res := Probe(context.Background(), ts.URL, time.Second, false); res.Reachable {
		t.Error("self-signed cert should fail without skipTLSVerify")
	}
	if res := Probe(context.Background(), ts.URL, time.Second, true); !res.Reachable {
		t.Errorf("self-signed cert should pass with skipTLSVerify, error = %s", res.Error)
	}
}

func TestProbeUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	res := Probe(context.Background(), url, 500*time.Millisecond, false)
	if res.Reachable {
		t.Error("closed server reported reachable")
	}
	if res.Error == "" {
		t.Error("expected an error message")
	}
}
