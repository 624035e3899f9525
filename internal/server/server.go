// Package server exposes palette extraction over HTTP: an upload
// endpoint, a chart view over cached results, and a minimal upload form.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/dbscanvas/internal/cache"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultMaxUploadBytes caps upload bodies at 32 MiB.
	DefaultMaxUploadBytes = 32 << 20

	shutdownTimeout = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address. Empty selects DefaultAddr.
	Addr string

	// Store memoizes clustering runs and backs the chart endpoint.
	// Nil selects an in-memory store.
	Store cache.Store

	// MaxUploadBytes caps the size of an upload body. Values below 1
	// select DefaultMaxUploadBytes.
	MaxUploadBytes int64

	// Logger receives request and lifecycle logs. Nil selects a default
	// logger.
	Logger hclog.Logger
}

// Server serves the palette extraction API.
type Server struct {
	addr           string
	store          cache.Store
	maxUploadBytes int64
	logger         hclog.Logger
	httpServer     *http.Server
}

// New creates a Server from config.
func New(config Config) *Server {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.Store == nil {
		config.Store = cache.NewMemoryStore(0)
	}
	if config.MaxUploadBytes < 1 {
		config.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if config.Logger == nil {
		config.Logger = hclog.New(&hclog.LoggerOptions{Name: "dbscanvas"})
	}

	s := &Server{
		addr:           config.Addr,
		store:          config.Store,
		maxUploadBytes: config.MaxUploadBytes,
		logger:         config.Logger,
	}
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.requestLogger(s.routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// routes builds the request mux.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /api/v1/palette", s.handlePalette)
	mux.HandleFunc("GET /api/v1/palette/{key}/chart", s.handleChart)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}

// Handler returns the server's handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
