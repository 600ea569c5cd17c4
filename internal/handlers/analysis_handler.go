package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/models"
	"github.com/ternarybob/contendo/internal/services/analysis"
	"github.com/ternarybob/contendo/internal/services/competitors"
	"github.com/ternarybob/contendo/internal/services/content"
	"github.com/ternarybob/contendo/internal/urlutil"
)

// AnalysisHandler exposes the gap analysis surface: it resolves the target
// URL, gathers the project's competitors and runs the analyzer.
type AnalysisHandler struct {
	analysisService   *analysis.Service
	contentService    *content.Service
	competitorService *competitors.Service
	logger            arbor.ILogger
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(analysisService *analysis.Service, contentService *content.Service, competitorService *competitors.Service, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService:   analysisService,
		contentService:    contentService,
		competitorService: competitorService,
		logger:            logger,
	}
}

// GapAnalysisHandler handles POST /api/analysis/gap.
//
// Request body: {"projectId": "...", "url": "...", "refresh": false}.
// The target URL is resolved through the matching cascade; an unresolved
// target still produces a valid (minimal) result rather than an error.
func (h *AnalysisHandler) GapAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var body struct {
		ProjectID string `json:"projectId"`
		URL       string `json:"url"`
		Refresh   bool   `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.ProjectID == "" {
		WriteError(w, http.StatusBadRequest, "projectId is required")
		return
	}
	if strings.TrimSpace(body.URL) == "" {
		WriteError(w, http.StatusBadRequest, "url is required")
		return
	}

	target := h.resolveTarget(r, body.URL)

	competitorRecords, err := h.gatherCompetitors(r, body.ProjectID, body.Refresh)
	if err != nil {
		h.logger.Error().Str("project_id", body.ProjectID).Err(err).Msg("Failed to gather competitors")
		WriteError(w, http.StatusInternalServerError, "Failed to gather competitors")
		return
	}

	result := h.analysisService.Analyze(r.Context(), body.ProjectID, target, competitorRecords)
	WriteJSON(w, http.StatusOK, result)
}

// HistoryHandler handles GET /api/analysis/history?projectId=...&limit=N.
func (h *AnalysisHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		WriteError(w, http.StatusBadRequest, "projectId query parameter is required")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.analysisService.History(r.Context(), projectID, limit)
	if err != nil {
		h.logger.Error().Str("project_id", projectID).Err(err).Msg("Failed to load analysis history")
		WriteError(w, http.StatusInternalServerError, "Failed to load analysis history")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"analyses": records,
		"total":    len(records),
	})
}

// resolveTarget locates the stored record for the target URL. A resolution
// miss degrades to an empty record carrying only the URL, which routes the
// analyzer down its minimal-gap path.
func (h *AnalysisHandler) resolveTarget(r *http.Request, rawURL string) *models.ContentRecord {
	resolution := h.contentService.Resolve(r.Context(), rawURL)
	if resolution != nil {
		return resolution.Record
	}

	h.logger.Debug().Str("url", rawURL).Msg("Target URL did not resolve to a stored record")
	return &models.ContentRecord{URL: urlutil.Normalize(rawURL)}
}

func (h *AnalysisHandler) gatherCompetitors(r *http.Request, projectID string, refresh bool) ([]*models.CompetitorRecord, error) {
	if refresh {
		return h.competitorService.RefreshAll(r.Context(), projectID)
	}
	return h.competitorService.List(r.Context(), projectID)
}
