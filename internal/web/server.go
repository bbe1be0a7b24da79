package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config holds the sheet server configuration
type Config struct {
	// Addr is the listen address, host:port
	Addr string

	// File is the xlsx workbook holding the directory; empty keeps it in memory
	File string
}

// DefaultConfig returns the default sheet server configuration
func DefaultConfig() Config {
	return Config{
		Addr: "127.0.0.1:8080",
		File: "directory.xlsx",
	}
}

// Options configures a Server
type Options struct {
	Logger *slog.Logger
}

// Server serves the remote store protocol on top of a Workbook
type Server struct {
	httpServer *http.Server
	workbook   *Workbook
	config     Config
	logger     *slog.Logger

	listener net.Listener
	ready    chan struct{}
}

// New creates a new sheet server, opening or creating its workbook
func New(config Config, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	workbook, err := OpenWorkbook(config.File)
	if err != nil {
		return nil, err
	}

	s := &Server{
		workbook: workbook,
		config:   config,
		logger:   logger,
		ready:    make(chan struct{}),
	}

	s.httpServer = &http.Server{
		Addr:              config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s, nil
}

// Handler returns the HTTP handler with all routes and middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.setupRoutes(mux)

	return s.loggingMiddleware(mux)
}

// Start listens and serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	s.listener = listener
	close(s.ready)

	s.logger.Info("sheet server listening",
		slog.String("addr", listener.Addr().String()),
		slog.String("file", s.workbook.Path()),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// an outside Shutdown also ends the watcher below
		defer cancel()

		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.Background()) //nolint:contextcheck // parent context cancelled, use background for shutdown
	})

	return g.Wait()
}

// Ready is closed once the server is listening
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the address the server listens on. It is only valid after
// Ready is closed.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.config.Addr
	}

	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the sheet server. It is safe to call from
// any goroutine, before or after Start.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down sheet server")

	return s.httpServer.Shutdown(shutdownCtx)
}

// Close releases the workbook
func (s *Server) Close() error {
	return s.workbook.Close()
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
