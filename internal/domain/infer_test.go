package domain

import "testing"

func TestInferType(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Type
	}{
		{"localhost with port", "http://localhost:3000", TypeLocal},
		{"loopback ip", "http://127.0.0.1:8080/admin", TypeLocal},
		{"uppercase localhost", "HTTP://LOCALHOST:9000", TypeLocal},
		{"mixed case host", "https://LocalHost", TypeLocal},
		{"subdomain of localhost", "http://api.localhost:5173", TypeLocal},
		{"public site", "https://github.com", TypeWeb},
		{"localhost only in path", "https://example.com/localhost", TypeWeb},
		{"localhost only in query", "https://example.com/?next=127.0.0.1", TypeWeb},
		{"localhost as userinfo", "http://localhost@example.com", TypeWeb},
		{"private lan ip", "http://192.168.1.10:8123", TypeWeb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferType(tt.url); got != tt.want {
				t.Errorf("InferType(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestInferTypeUnparseable(t *testing.T) {
	// Falls back to inspecting the raw string.
	if got := InferType("localhost:%zz"); got != TypeLocal {
		t.Errorf("InferType() = %v, want %v", got, TypeLocal)
	}
	if got := InferType(""); got != TypeWeb {
		t.Errorf("InferType(\"\") = %v, want %v", got, TypeWeb)
	}
}
