package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/handlers"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/services/analysis"
	"github.com/ternarybob/contendo/internal/services/competitors"
	"github.com/ternarybob/contendo/internal/services/content"
	"github.com/ternarybob/contendo/internal/services/llm"
	"github.com/ternarybob/contendo/internal/services/metrics"
	"github.com/ternarybob/contendo/internal/services/scraper"
	"github.com/ternarybob/contendo/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	MetricsService    *metrics.Service
	ContentService    *content.Service
	CompetitorService *competitors.Service
	AnalysisService   *analysis.Service

	// External collaborators
	ScraperService interfaces.ScraperService
	LLMService     interfaces.LLMService

	// HTTP handlers
	APIHandler        *handlers.APIHandler
	ContentHandler    *handlers.ContentHandler
	CompetitorHandler *handlers.CompetitorHandler
	AnalysisHandler   *handlers.AnalysisHandler
}

// New creates and wires all application components. Collaborators are
// constructed leaves-first so each service receives its dependencies
// explicitly.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badger.NewManager(&config.Storage.Badger, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	llmService, err := llm.NewLLMService(config, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize LLM service: %w", err)
	}

	scraperService := scraper.NewService(config.Scraper, logger)
	metricsService := metrics.NewService(nil, logger)

	contentService := content.NewService(storageManager.ContentStorage(), metricsService, logger)
	competitorService := competitors.NewService(
		storageManager.CompetitorStorage(),
		scraperService,
		metricsService,
		config.Analysis.RefreshWorkers,
		config.Scraper.MinContentLength,
		logger,
	)
	analysisService := analysis.NewService(llmService, storageManager.AnalysisStorage(), config.Analysis, logger)

	app := &App{
		Config:         config,
		Logger:         logger,
		StorageManager: storageManager,

		MetricsService:    metricsService,
		ContentService:    contentService,
		CompetitorService: competitorService,
		AnalysisService:   analysisService,

		ScraperService: scraperService,
		LLMService:     llmService,

		APIHandler:        handlers.NewAPIHandler(storageManager, llmService, logger),
		ContentHandler:    handlers.NewContentHandler(contentService, logger),
		CompetitorHandler: handlers.NewCompetitorHandler(competitorService, logger),
		AnalysisHandler:   handlers.NewAnalysisHandler(analysisService, contentService, competitorService, logger),
	}

	logger.Info().
		Str("environment", config.Environment).
		Str("llm_mode", config.LLM.Mode).
		Msg("Application components initialized")

	return app, nil
}

// Close shuts down application components in reverse dependency order.
func (a *App) Close(ctx context.Context) error {
	var firstErr error

	if err := a.LLMService.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		firstErr = err
	}
	if err := a.ScraperService.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close scraper service")
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := a.StorageManager.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close storage")
		if firstErr == nil {
			firstErr = err
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return firstErr
}
