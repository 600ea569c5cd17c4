package competitors

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/models"
	"github.com/ternarybob/contendo/internal/services/metrics"
	"github.com/ternarybob/contendo/internal/urlutil"
)

const maxTitleLength = 50

// Service orchestrates scraping, metric computation and persistence of
// competitor records. Records are unique per (project, normalized URL);
// adding a known URL recomputes the existing record.
type Service struct {
	storage        interfaces.CompetitorStorage
	scraper        interfaces.ScraperService
	metrics        *metrics.Service
	refreshWorkers int
	minContentLen  int
	logger         arbor.ILogger
}

// NewService creates a competitor service. refreshWorkers bounds the
// concurrency of RefreshAll; minContentLen is the threshold below which a
// scrape counts as empty and a fallback record is stored.
func NewService(storage interfaces.CompetitorStorage, scraperService interfaces.ScraperService, metricsService *metrics.Service, refreshWorkers, minContentLen int, logger arbor.ILogger) *Service {
	if refreshWorkers < 1 {
		refreshWorkers = 1
	}
	return &Service{
		storage:        storage,
		scraper:        scraperService,
		metrics:        metricsService,
		refreshWorkers: refreshWorkers,
		minContentLen:  minContentLen,
		logger:         logger,
	}
}

// AddOrRefresh adds a competitor URL to a project, or recomputes the
// existing record when the normalized URL is already tracked. Scrape
// failures degrade to a fallback record; only a persistence failure returns
// an error.
func (s *Service) AddOrRefresh(ctx context.Context, projectID, rawURL string) (*models.CompetitorRecord, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("competitor URL is required")
	}

	normalized := urlutil.Normalize(rawURL)

	existing, err := s.storage.GetCompetitorByURL(ctx, projectID, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up competitor: %w", err)
	}
	if existing != nil {
		return s.Recalculate(ctx, existing.ID)
	}

	record := &models.CompetitorRecord{
		ProjectID: projectID,
		URL:       normalized,
	}
	s.populate(ctx, record)

	if err := s.storage.SaveCompetitor(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save competitor: %w", err)
	}

	if s.logger != nil {
		s.logger.Info().
			Str("id", record.ID).
			Str("project_id", projectID).
			Str("url", normalized).
			Int("word_count", record.WordCount()).
			Msg("Added competitor")
	}
	return record, nil
}

// Recalculate re-scrapes an existing competitor and overwrites its metrics,
// keywords and strengths, preserving its identity.
func (s *Service) Recalculate(ctx context.Context, id string) (*models.CompetitorRecord, error) {
	record, err := s.storage.GetCompetitor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load competitor: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("competitor %s not found", id)
	}

	s.populate(ctx, record)

	if err := s.storage.SaveCompetitor(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save competitor: %w", err)
	}
	return record, nil
}

// RefreshAll recalculates every competitor in a project with bounded
// concurrency. Individual refresh failures are logged and skipped; the
// refreshed records are returned in storage order.
func (s *Service) RefreshAll(ctx context.Context, projectID string) ([]*models.CompetitorRecord, error) {
	records, err := s.storage.ListCompetitors(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}

	sem := make(chan struct{}, s.refreshWorkers)
	var wg sync.WaitGroup

	refreshed := make([]*models.CompetitorRecord, len(records))
	for i, record := range records {
		wg.Add(1)
		go func(i int, id string, fallback *models.CompetitorRecord) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			updated, err := s.Recalculate(ctx, id)
			if err != nil {
				if s.logger != nil {
					s.logger.Warn().Str("id", id).Err(err).Msg("Competitor refresh failed")
				}
				refreshed[i] = fallback
				return
			}
			refreshed[i] = updated
		}(i, record.ID, record)
	}
	wg.Wait()

	return refreshed, nil
}

// Get returns a competitor record by ID, or (nil, nil) when absent.
func (s *Service) Get(ctx context.Context, id string) (*models.CompetitorRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("competitor ID is required")
	}
	return s.storage.GetCompetitor(ctx, id)
}

// List returns the competitors tracked for a project.
func (s *Service) List(ctx context.Context, projectID string) ([]*models.CompetitorRecord, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}
	return s.storage.ListCompetitors(ctx, projectID)
}

// Delete removes a competitor record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("competitor ID is required")
	}
	return s.storage.DeleteCompetitor(ctx, id)
}

// populate scrapes the record's URL and fills in title, body, metrics,
// keywords and strengths. Scrape failures and near-empty pages produce a
// fallback shape instead of an error.
func (s *Service) populate(ctx context.Context, record *models.CompetitorRecord) {
	result, err := s.scraper.Fetch(ctx, record.URL)
	if err != nil || result == nil || len(result.Text) < s.minContentLen {
		if s.logger != nil {
			s.logger.Warn().
				Str("url", record.URL).
				Err(err).
				Msg("Scrape failed or returned near-empty content, storing fallback record")
		}
		record.Title = urlutil.Hostname(record.URL)
		record.Text = ""
		record.HTML = ""
		record.Metrics = &models.ContentMetrics{}
		record.Keywords = []models.Keyword{}
		record.Strengths = []string{"Could not analyze content"}
		return
	}

	analysis := s.metrics.Compute(result.Text, result.HTML)

	record.Title = displayTitle(result.Title, record.URL)
	record.Text = result.Text
	record.HTML = result.HTML
	record.Metrics = analysis.Metrics
	record.Keywords = analysis.Keywords
	record.Strengths = analysis.Strengths
}

// displayTitle picks the scraped title or falls back to the hostname,
// truncating long titles with an ellipsis.
func displayTitle(scraped, url string) string {
	title := strings.TrimSpace(scraped)
	if title == "" {
		title = urlutil.Hostname(url)
	}
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength] + "..."
	}
	return title
}
