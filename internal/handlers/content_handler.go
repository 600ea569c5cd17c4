package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/services/content"
)

// ContentHandler exposes content record management and URL resolution.
type ContentHandler struct {
	service *content.Service
	logger  arbor.ILogger
}

// NewContentHandler creates a content handler.
func NewContentHandler(service *content.Service, logger arbor.ILogger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger,
	}
}

// ContentRootHandler handles /api/content: POST saves a record, GET lists.
func (h *ContentHandler) ContentRootHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.saveContent(w, r)
	case http.MethodGet:
		h.listContent(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// ResolveHandler handles GET /api/content/resolve?url=...
func (h *ContentHandler) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	rawURL := r.URL.Query().Get("url")
	if strings.TrimSpace(rawURL) == "" {
		WriteError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	resolution := h.service.Resolve(r.Context(), rawURL)
	if resolution == nil {
		WriteError(w, http.StatusNotFound, "No content record matches the URL")
		return
	}
	WriteJSON(w, http.StatusOK, resolution)
}

// GetContentHandler handles GET /api/content/{id}.
func (h *ContentHandler) GetContentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/content/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error().Str("id", id).Err(err).Msg("Failed to load content record")
		WriteError(w, http.StatusInternalServerError, "Failed to load content record")
		return
	}
	if record == nil {
		WriteError(w, http.StatusNotFound, "Content record not found")
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

func (h *ContentHandler) saveContent(w http.ResponseWriter, r *http.Request) {
	var input content.SaveInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(input.URL) == "" {
		WriteError(w, http.StatusBadRequest, "url is required")
		return
	}

	record, err := h.service.Save(r.Context(), input)
	if err != nil {
		h.logger.Error().Str("url", input.URL).Err(err).Msg("Failed to save content")
		WriteError(w, http.StatusInternalServerError, "Failed to save content")
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

func (h *ContentHandler) listContent(w http.ResponseWriter, r *http.Request) {
	limit, offset := GetListParams(r)

	records, err := h.service.List(r.Context(), &interfaces.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list content records")
		WriteError(w, http.StatusInternalServerError, "Failed to list content records")
		return
	}

	count, err := h.service.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count content records")
		WriteError(w, http.StatusInternalServerError, "Failed to count content records")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"total":   count,
		"limit":   limit,
		"offset":  offset,
	})
}
