package server

import (
	"net/http"

	"github.com/bobmcallan/ukdata-mcp/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)
	mux.HandleFunc("/api/upstreams", s.app.UpstreamHandler.ServeHTTP)

	if s.app.Metrics != nil {
		path := s.app.Config.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, s.app.Metrics.Handler())
	}

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, http.StatusNotFound, "The requested endpoint does not exist")
}
