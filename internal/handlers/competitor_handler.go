package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/services/competitors"
)

// CompetitorHandler exposes competitor tracking per project.
type CompetitorHandler struct {
	service *competitors.Service
	logger  arbor.ILogger
}

// NewCompetitorHandler creates a competitor handler.
func NewCompetitorHandler(service *competitors.Service, logger arbor.ILogger) *CompetitorHandler {
	return &CompetitorHandler{
		service: service,
		logger:  logger,
	}
}

// ProjectCompetitorsHandler handles /api/projects/{projectID}/competitors
// and /api/projects/{projectID}/competitors/refresh.
func (h *CompetitorHandler) ProjectCompetitorsHandler(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// Expected: api/projects/{projectID}/competitors[/refresh]
	if len(parts) < 4 || parts[3] != "competitors" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	projectID := parts[2]
	if projectID == "" {
		WriteError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	if len(parts) == 5 && parts[4] == "refresh" {
		h.refreshAll(w, r, projectID)
		return
	}
	if len(parts) != 4 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.addCompetitor(w, r, projectID)
	case http.MethodGet:
		h.listCompetitors(w, r, projectID)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// CompetitorByIDHandler handles /api/competitors/{id} and
// /api/competitors/{id}/recalculate.
func (h *CompetitorHandler) CompetitorByIDHandler(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// Expected: api/competitors/{id}[/recalculate]
	if len(parts) < 3 || parts[2] == "" {
		WriteError(w, http.StatusBadRequest, "Competitor ID is required")
		return
	}
	id := parts[2]

	if len(parts) == 4 && parts[3] == "recalculate" {
		h.recalculate(w, r, id)
		return
	}
	if len(parts) != 3 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getCompetitor(w, r, id)
	case http.MethodDelete:
		h.deleteCompetitor(w, r, id)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *CompetitorHandler) addCompetitor(w http.ResponseWriter, r *http.Request, projectID string) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(body.URL) == "" {
		WriteError(w, http.StatusBadRequest, "url is required")
		return
	}

	record, err := h.service.AddOrRefresh(r.Context(), projectID, body.URL)
	if err != nil {
		h.logger.Error().
			Str("project_id", projectID).
			Str("url", body.URL).
			Err(err).
			Msg("Failed to add competitor")
		WriteError(w, http.StatusInternalServerError, "Failed to add competitor")
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

func (h *CompetitorHandler) listCompetitors(w http.ResponseWriter, r *http.Request, projectID string) {
	records, err := h.service.List(r.Context(), projectID)
	if err != nil {
		h.logger.Error().Str("project_id", projectID).Err(err).Msg("Failed to list competitors")
		WriteError(w, http.StatusInternalServerError, "Failed to list competitors")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"competitors": records,
		"total":       len(records),
	})
}

func (h *CompetitorHandler) refreshAll(w http.ResponseWriter, r *http.Request, projectID string) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	records, err := h.service.RefreshAll(r.Context(), projectID)
	if err != nil {
		h.logger.Error().Str("project_id", projectID).Err(err).Msg("Failed to refresh competitors")
		WriteError(w, http.StatusInternalServerError, "Failed to refresh competitors")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"competitors": records,
		"total":       len(records),
	})
}

func (h *CompetitorHandler) getCompetitor(w http.ResponseWriter, r *http.Request, id string) {
	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error().Str("id", id).Err(err).Msg("Failed to load competitor")
		WriteError(w, http.StatusInternalServerError, "Failed to load competitor")
		return
	}
	if record == nil {
		WriteError(w, http.StatusNotFound, "Competitor not found")
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

func (h *CompetitorHandler) deleteCompetitor(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error().Str("id", id).Err(err).Msg("Failed to delete competitor")
		WriteError(w, http.StatusInternalServerError, "Failed to delete competitor")
		return
	}
	WriteSuccess(w, "Competitor deleted")
}

func (h *CompetitorHandler) recalculate(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	record, err := h.service.Recalculate(r.Context(), id)
	if err != nil {
		h.logger.Error().Str("id", id).Err(err).Msg("Failed to recalculate competitor")
		WriteError(w, http.StatusInternalServerError, "Failed to recalculate competitor")
		return
	}
	WriteJSON(w, http.StatusOK, record)
}
