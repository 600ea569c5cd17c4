package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/interfaces"
)

// APIHandler serves the system surface: version, health and status.
type APIHandler struct {
	storage interfaces.StorageManager
	llm     interfaces.LLMService
	logger  arbor.ILogger
}

// NewAPIHandler creates an API handler.
func NewAPIHandler(storage interfaces.StorageManager, llm interfaces.LLMService, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		storage: storage,
		llm:     llm,
		logger:  logger,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.Build,
		"git_commit": common.GitCommit,
	})
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// StatusHandler returns application status: record counts and LLM mode.
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	contentCount, err := h.storage.ContentStorage().CountContent(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count content records")
		WriteError(w, http.StatusInternalServerError, "Failed to read status")
		return
	}
	analysisCount, err := h.storage.AnalysisStorage().CountAnalyses(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count analyses")
		WriteError(w, http.StatusInternalServerError, "Failed to read status")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        common.GetVersion(),
		"content_count":  contentCount,
		"analysis_count": analysisCount,
		"llm_mode":       string(h.llm.GetMode()),
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
