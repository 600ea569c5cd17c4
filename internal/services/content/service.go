package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/models"
	"github.com/ternarybob/contendo/internal/services/metrics"
	"github.com/ternarybob/contendo/internal/urlutil"
)

// Service manages stored content records: analysis on save, lookup, and URL
// resolution through the matching cascade.
type Service struct {
	storage  interfaces.ContentStorage
	metrics  *metrics.Service
	resolver *Resolver
	logger   arbor.ILogger
}

// NewService creates a content service over the given storage and metrics
// engine.
func NewService(storage interfaces.ContentStorage, metricsService *metrics.Service, logger arbor.ILogger) *Service {
	return &Service{
		storage:  storage,
		metrics:  metricsService,
		resolver: NewResolver(storage, logger),
		logger:   logger,
	}
}

// SaveInput carries the caller-supplied fields for saving content.
type SaveInput struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
	HTML  string `json:"html"`
}

// Save analyzes and persists a content record, deduplicating by normalized
// URL: re-saving a known URL recomputes its metrics in place instead of
// inserting a second record.
func (s *Service) Save(ctx context.Context, input SaveInput) (*models.ContentRecord, error) {
	if strings.TrimSpace(input.URL) == "" {
		return nil, fmt.Errorf("content URL is required")
	}

	normalized := urlutil.Normalize(input.URL)

	record, err := s.storage.GetContentByURL(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing content: %w", err)
	}
	if record == nil {
		record = &models.ContentRecord{URL: normalized}
	}

	analysis := s.metrics.Compute(input.Text, input.HTML)

	record.Title = input.Title
	record.Text = input.Text
	record.Metrics = analysis.Metrics
	record.Keywords = analysis.Keywords

	if err := s.storage.SaveContent(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save content: %w", err)
	}

	if s.logger != nil {
		s.logger.Info().
			Str("id", record.ID).
			Str("url", record.URL).
			Int("word_count", record.Metrics.WordCount).
			Msg("Saved content record")
	}
	return record, nil
}

// Get returns a content record by ID, or (nil, nil) when absent.
func (s *Service) Get(ctx context.Context, id string) (*models.ContentRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("content ID is required")
	}
	return s.storage.GetContent(ctx, id)
}

// List returns stored content records with pagination.
func (s *Service) List(ctx context.Context, opts *interfaces.ListOptions) ([]*models.ContentRecord, error) {
	return s.storage.ListContent(ctx, opts)
}

// Count returns the number of stored content records.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.CountContent(ctx)
}

// Resolve locates the best-matching stored record for a URL. Returns nil
// when no strategy produces a match.
func (s *Service) Resolve(ctx context.Context, rawURL string) *Resolution {
	return s.resolver.Resolve(ctx, rawURL)
}
