package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/appdeck/internal/config"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

func TestOpenBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{config.BackendFile, "file"},
		{config.BackendMemory, "memory"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := &config.Config{
				StoreBackend: tt.backend,
				DataFile:     filepath.Join(t.TempDir(), "apps.json"),
			}
			backend, client, err := OpenBackend(context.Background(), cfg, logger.Nop())
			if err != nil {
				t.Fatalf("OpenBackend() error = %v", err)
			}
			if client != nil {
				t.Error("redis client returned for non-redis backend")
			}
			if backend.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", backend.Name(), tt.want)
			}
		})
	}
}

func TestOpenBackendRedisInvalidOptions(t *testing.T) {
	cfg := &config.Config{StoreBackend: config.BackendRedis, RedisAddr: "127.0.0.1:1"}
	if _, _, err := OpenBackend(context.Background(), cfg, logger.Nop()); err == nil {
		t.Error("OpenBackend() error = nil with zero retry settings")
	}
}
