// Package http serves the prediction form API, the stored-data reports and
// the live feed of saved predictions.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"insurecost/logging"
)

// Server owns the HTTP listener and the feed hub.
type Server struct {
	server *http.Server
	config ServerConfig
	feed   *Feed
	log    *logging.Logger
}

// ServerConfig holds the listener and middleware settings.
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// DefaultServerConfig listens on :8080 with a 1 MiB body limit.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           8080,
		Timeout:        30 * time.Second,
		AllowedOrigins: []string{"*"},
		MaxBodyBytes:   1 << 20,
	}
}

// NewHandler builds the routed, middleware-wrapped handler.
func NewHandler(h *Handlers, config ServerConfig, log *logging.Logger) http.Handler {
	if log == nil {
		log = logging.NewNop()
	}
	mux := http.NewServeMux()
	RegisterHandlers(mux, h)

	chain := Chain(
		RecoveryMiddleware(log),
		LoggerMiddleware(log),
		SecurityHeadersMiddleware,
		CORSMiddleware(config.AllowedOrigins),
		RequestSizeMiddleware(config.MaxBodyBytes),
	)
	return chain(mux)
}

// NewServer builds a server; call Start to listen.
func NewServer(h *Handlers, config ServerConfig, log *logging.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	return &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", config.Port),
			Handler: NewHandler(h, config, log),
			// No WriteTimeout: it would cut long-lived websocket connections.
			ReadHeaderTimeout: config.Timeout,
			ReadTimeout:       config.Timeout,
			IdleTimeout:       120 * time.Second,
		},
		config: config,
		feed:   h.feed,
		log:    log,
	}
}

// Start runs the feed hub and blocks serving HTTP.
func (s *Server) Start() error {
	if s.feed != nil {
		go s.feed.Run()
	}
	s.log.Info("starting HTTP server", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop closes the feed and drains in-flight requests for up to five seconds.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.log.Info("shutting down HTTP server")
	if s.feed != nil {
		s.feed.Stop()
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
