// Package server wires configuration, storage, and the HTTP API into a
// runnable service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/talentbridge/internhub/internal/api/rest"
	"github.com/talentbridge/internhub/internal/auth"
	"github.com/talentbridge/internhub/internal/platform/config"
	"github.com/talentbridge/internhub/internal/platform/otel"
	"github.com/talentbridge/internhub/internal/storage/sqlite"
)

// Server hosts the HTTP API over a sqlite store.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *sqlite.Store
	logger     *zap.Logger
}

// New creates a configured server listening on cfg.Addr.
func New(cfg config.Server, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	store, err := openStore(cfg.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	tokens, err := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}

	handler := rest.NewHandler(store, tokens, logger)
	return &Server{
		listener:   listener,
		httpServer: &http.Server{Handler: handler.Routes()},
		store:      store,
		logger:     logger,
	}, nil
}

// Addr returns the listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve blocks until the server stops or the context ends, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	s.logger.Info("server listening", zap.String("addr", s.listener.Addr().String()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

func (s *Server) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("close store", zap.Error(err))
	}
}

// Run loads configuration, sets up tracing, and serves until the context
// ends.
func Run(ctx context.Context) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := otel.Setup(ctx, "internhub")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	srv, err := New(cfg, logger)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

func openStore(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}
