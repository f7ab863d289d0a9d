package server

import (
	"encoding/json"
	"net/http"

	"github.com/openproject-tools/openproject-mcp/internal/config"
)

// setupRoutes configures all HTTP routes. The health and identity routes
// are registered on the mux directly, ahead of the middleware wrap.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint (streamable HTTP transport)
	if s.mcpHandler != nil {
		mux.Handle("/mcp", s.mcpHandler)
		mux.Handle("/mcp/", s.mcpHandler)
	}

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleRoot)

	return mux
}

// handleHealth returns a fixed healthy-status body regardless of remote API
// reachability. Used as the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.cfg.Name,
		"version": config.GetVersion(),
	})
}

// handleRoot returns the service identity. Anything other than the root
// path itself is an unknown route.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"service":      s.cfg.Name,
		"status":       "running",
		"mcp_endpoint": "/mcp",
		"version":      config.GetVersion(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
