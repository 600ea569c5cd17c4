package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Content records and URL resolution
	mux.HandleFunc("/api/content", s.app.ContentHandler.ContentRootHandler)    // GET (list), POST (save)
	mux.HandleFunc("/api/content/resolve", s.app.ContentHandler.ResolveHandler) // GET ?url=
	mux.HandleFunc("/api/content/", s.app.ContentHandler.GetContentHandler)    // GET /{id}

	// API routes - Competitor tracking
	mux.HandleFunc("/api/projects/", s.app.CompetitorHandler.ProjectCompetitorsHandler) // /{projectID}/competitors[/refresh]
	mux.HandleFunc("/api/competitors/", s.app.CompetitorHandler.CompetitorByIDHandler)  // /{id}[/recalculate]

	// API routes - Gap analysis
	mux.HandleFunc("/api/analysis/gap", s.app.AnalysisHandler.GapAnalysisHandler)   // POST
	mux.HandleFunc("/api/analysis/history", s.app.AnalysisHandler.HistoryHandler)   // GET ?projectId=

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/status", s.app.APIHandler.StatusHandler)

	// Everything else under /api is a JSON 404
	mux.HandleFunc("/api/", s.handleUnknownAPI)

	return mux
}

func (s *Server) handleUnknownAPI(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	http.NotFound(w, r)
}
