package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	credit := s.app.CreditHandler
	disputes := s.app.DisputeHandler
	monitoring := s.app.MonitoringHandler

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// Credit pulls and link flow
	mux.HandleFunc("/api/credit/pull", credit.Pull)
	mux.HandleFunc("/api/credit/link/token", credit.LinkToken)
	mux.HandleFunc("/api/credit/link/exchange", credit.LinkExchange)
	mux.HandleFunc("/api/credit/link/pull", credit.LinkPull)
	mux.HandleFunc("/api/credit/pulls", credit.Pulls)
	mux.HandleFunc("/api/credit/pulls/{id}", credit.PullRecord)

	// Stored reports and analysis
	mux.HandleFunc("/api/credit/reports", credit.Reports)
	mux.HandleFunc("/api/credit/reports/{id}", credit.Report)
	mux.HandleFunc("/api/credit/reports/{id}/analysis", credit.Analysis)
	mux.HandleFunc("/api/credit/analyze", credit.Analyze)

	// Disputes
	mux.HandleFunc("/api/disputes", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, disputes.List, disputes.Submit)
	})
	mux.HandleFunc("/api/disputes/{id}", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceItem(w, r, disputes.Status, nil, nil)
	})

	// Monitoring
	mux.HandleFunc("/api/monitoring", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, monitoring.List, monitoring.Enable)
	})

	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
