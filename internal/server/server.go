// Package server runs the HTTP listener for the web form with a connection cap
// and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"fjacquet/complaint-classifier/internal/logging"

	"golang.org/x/net/netutil"
)

// Options configures the HTTP server.
type Options struct {
	Addr string
	// MaxConnections caps simultaneous connections; 0 means unlimited.
	MaxConnections  int
	ShutdownTimeout time.Duration
}

// Server wraps an http.Server.
type Server struct {
	srv     *http.Server
	opts    Options
	logger  logging.Logger
	addrCh  chan net.Addr
	mu      sync.Mutex
	started bool
}

// New creates a server for handler.
func New(handler http.Handler, opts Options, logger logging.Logger) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 15 * time.Second
	}
	return &Server{
		srv: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		opts:   opts,
		logger: logger,
		addrCh: make(chan net.Addr, 1),
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
// A Server serves once; later calls fail without touching their listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("server already started")
	}
	s.started = true
	s.mu.Unlock()

	if s.opts.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.opts.MaxConnections)
	}
	s.addrCh <- ln.Addr()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server",
			logging.F(logging.FieldAddress, ln.Addr().String()),
			logging.F("max_connections", s.opts.MaxConnections))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.WithError(err).Error("Server forced to shutdown")
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("Server exited")
	return nil
}

// Addr blocks until the server is listening and returns its address.
func (s *Server) Addr(ctx context.Context) (net.Addr, error) {
	select {
	case addr := <-s.addrCh:
		s.addrCh <- addr
		return addr, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
