package web

import "net/http"

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	// Remote store protocol, answered on any other path
	mux.HandleFunc("/", s.handleExec)
}
