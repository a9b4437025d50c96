package server

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/talentbridge/internhub/internal/platform/config"
)

// TestServeStopsOnContext verifies the server answers requests and stops on
// cancel.
func TestServeStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Server{
		Addr:        "127.0.0.1:0",
		DBPath:      filepath.Join(t.TempDir(), "internhub.db"),
		TokenSecret: "test-secret-test-secret",
		TokenTTL:    time.Hour,
	}
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ctx)
	}()

	addr := srv.Addr()
	if _, _, err := net.SplitHostPort(addr); err != nil {
		t.Fatalf("split address %q: %v", addr, err)
	}

	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := client.Get("http://" + addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("healthz status = %d, want %d", resp.StatusCode, http.StatusOK)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never became ready: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

// TestNewRejectsBadAddr verifies listener errors surface from New.
func TestNewRejectsBadAddr(t *testing.T) {
	cfg := config.Server{
		Addr:        "256.256.256.256:0",
		DBPath:      filepath.Join(t.TempDir(), "internhub.db"),
		TokenSecret: "test-secret-test-secret",
		TokenTTL:    time.Hour,
	}
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected listen error")
	}
}
