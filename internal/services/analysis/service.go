package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/models"
	"github.com/ternarybob/contendo/internal/urlutil"
)

const llmTimeout = 60 * time.Second

// Service is the gap analyzer: it compares a target content record against a
// competitor set, preferring the language-model path and degrading to the
// deterministic fallback on any failure. Analyze never returns an error; the
// caller always receives a structurally valid result.
type Service struct {
	llm     interfaces.LLMService
	storage interfaces.AnalysisStorage
	config  common.AnalysisConfig
	logger  arbor.ILogger
}

// NewService creates a gap analyzer. storage may be nil, in which case
// results are never persisted.
func NewService(llm interfaces.LLMService, storage interfaces.AnalysisStorage, config common.AnalysisConfig, logger arbor.ILogger) *Service {
	return &Service{
		llm:     llm,
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// Analyze produces a gap analysis for the target against its competitors.
// The input competitor set is always echoed back on the result, including
// for degraded and empty outcomes.
func (s *Service) Analyze(ctx context.Context, projectID string, target *models.ContentRecord, competitors []*models.CompetitorRecord) *models.GapAnalysisResult {
	if len(competitors) == 0 {
		return models.NewEmptyGapAnalysisResult(models.AnalysisSourceHeuristic)
	}
	if s.config.MaxCompetitors > 0 && len(competitors) > s.config.MaxCompetitors {
		competitors = competitors[:s.config.MaxCompetitors]
	}

	result := s.analyze(ctx, target, competitors)
	result.Competitors = competitors

	s.persist(ctx, projectID, target, result)
	return result
}

func (s *Service) analyze(ctx context.Context, target *models.ContentRecord, competitors []*models.CompetitorRecord) *models.GapAnalysisResult {
	if target == nil || strings.TrimSpace(target.Text) == "" {
		return s.minimalResult(target, len(competitors))
	}

	if result := s.tryLLM(ctx, target, competitors); result != nil {
		return result
	}
	return fallbackAnalysis(target, competitors)
}

// tryLLM runs the primary path. Any failure (disabled mode, transport error,
// timeout, unparsable response) returns nil so the caller falls back.
func (s *Service) tryLLM(ctx context.Context, target *models.ContentRecord, competitors []*models.CompetitorRecord) *models.GapAnalysisResult {
	if s.llm == nil || s.llm.GetMode() == interfaces.LLMModeDisabled {
		return nil
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	response, err := s.llm.Chat(llmCtx, []interfaces.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildPrompt(target, competitors, s.config.KeywordsPerCompetitor)},
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("LLM analysis failed, using deterministic fallback")
		}
		return nil
	}

	result, err := parseAnalysisResponse(response)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("LLM response unparsable, using deterministic fallback")
		}
		return nil
	}
	return result
}

// minimalResult covers targets with no analyzable text: a single gap seeded
// from the URL's last path segment, since no metric comparison is possible.
func (s *Service) minimalResult(target *models.ContentRecord, competitorCount int) *models.GapAnalysisResult {
	topic := "Page content"
	if target != nil {
		if segments := urlutil.PathSegments(pathOf(target.URL)); len(segments) > 0 {
			topic = strings.ReplaceAll(segments[len(segments)-1], "-", " ")
		}
	}

	result := models.NewEmptyGapAnalysisResult(models.AnalysisSourceHeuristic)
	result.ContentGaps = append(result.ContentGaps, models.ContentGap{
		Topic:                   topic,
		Description:             "The target page has no analyzable text content",
		Relevance:               "70",
		SuggestedImplementation: "Create content covering this topic before comparing against competitors",
		CompetitorsCovering:     competitorCount,
		Actionable:              true,
	})
	return result
}

// persist stores an analysis snapshot when configured to. Persistence
// failures are logged and swallowed; they never degrade the analysis itself.
func (s *Service) persist(ctx context.Context, projectID string, target *models.ContentRecord, result *models.GapAnalysisResult) {
	if s.storage == nil || !s.config.PersistResults || projectID == "" {
		return
	}

	targetURL := ""
	if target != nil {
		targetURL = target.URL
	}
	record := &models.GapAnalysisRecord{
		ProjectID: projectID,
		TargetURL: targetURL,
		Result:    *result,
	}
	if err := s.storage.SaveAnalysis(ctx, record); err != nil && s.logger != nil {
		s.logger.Warn().Str("project_id", projectID).Err(err).Msg("Failed to persist analysis snapshot")
	}
}

// History returns persisted analysis snapshots for a project, newest first.
func (s *Service) History(ctx context.Context, projectID string, limit int) ([]*models.GapAnalysisRecord, error) {
	if s.storage == nil {
		return []*models.GapAnalysisRecord{}, nil
	}
	return s.storage.ListAnalyses(ctx, projectID, limit)
}

// pathOf extracts the path portion of a URL string.
func pathOf(rawURL string) string {
	s := rawURL
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, "/"); idx >= 0 {
		return s[idx:]
	}
	return ""
}
