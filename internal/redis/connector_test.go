package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "127.0.0.1:1",
		DialTimeout:    50 * time.Millisecond,
		ConnectTimeout: 200 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConnectOptions)
		wantErr string
	}{
		{"valid", func(*ConnectOptions) {}, ""},
		{"missing addr", func(o *ConnectOptions) { o.Addr = "" }, "address"},
		{"zero connect timeout", func(o *ConnectOptions) { o.ConnectTimeout = 0 }, "ConnectTimeout"},
		{"zero retry interval", func(o *ConnectOptions) { o.RetryInterval = 0 }, "RetryInterval"},
		{"zero max wait", func(o *ConnectOptions) { o.MaxWait = 0 }, "MaxWait"},
		{"zero ping timeout", func(o *ConnectOptions) { o.PingTimeout = 0 }, "PingTimeout"},
		{"negative threshold", func(o *ConnectOptions) { o.WarnThreshold = -1 }, "WarnThreshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestConnectGivesUpAfterTimeout(t *testing.T) {
	start := time.Now()
	client, err := Connect(context.Background(), validOptions(), logger.Nop())
	if err == nil {
		_ = client.Close()
		t.Fatal("Connect() succeeded against a closed port")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Connect() took %v, want roughly the connect timeout", elapsed)
	}
}

func TestConnectHonorsCancellation(t *testing.T) {
	opts := validOptions()
	opts.ConnectTimeout = time.Minute
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	if _, err := Connect(ctx, opts, logger.Nop()); err == nil {
		t.Fatal("Connect() succeeded against a closed port")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Connect() ignored cancellation, took %v", elapsed)
	}
}
