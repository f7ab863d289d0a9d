// Package server wraps the MCP streamable HTTP handler in the service's
// HTTP front-end: health and identity routes, CORS, request logging, and
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openproject-tools/openproject-mcp/internal/common"
	"github.com/openproject-tools/openproject-mcp/internal/config"
)

// ShutdownGracePeriod is how long in-flight requests get to finish once a
// shutdown signal arrives.
const ShutdownGracePeriod = 30 * time.Second

// Server manages the HTTP server and routes.
type Server struct {
	cfg        config.ServerConfig
	mcpHandler http.Handler
	router     *http.ServeMux
	server     *http.Server
	logger     *common.Logger
}

// New creates the HTTP front-end around the given MCP handler.
func New(cfg config.ServerConfig, mcpHandler http.Handler, logger *common.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		mcpHandler: mcpHandler,
		logger:     logger,
	}

	s.router = s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // translated tools proxy arbitrary API calls
		IdleTimeout:  65 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("mcp_endpoint", "/mcp").
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
