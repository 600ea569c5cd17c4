package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/interfaces"
)

// NewLLMService creates the LLM service implementation selected by
// configuration: a cloud provider (Claude or Gemini) or the disabled stub.
func NewLLMService(cfg *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	switch cfg.LLM.Mode {
	case "disabled":
		logger.Info().Msg("LLM disabled, gap analysis will use the deterministic fallback")
		return NewDisabledService(), nil

	case "cloud":
		logger.Info().
			Str("provider", cfg.LLM.Provider).
			Msg("Initializing cloud LLM service")

		switch cfg.LLM.Provider {
		case "claude":
			return NewClaudeService(&cfg.LLM.Claude, logger)
		case "gemini":
			return NewGeminiService(&cfg.LLM.Gemini, logger)
		default:
			return nil, fmt.Errorf("invalid LLM provider '%s': must be 'claude' or 'gemini'", cfg.LLM.Provider)
		}

	default:
		return nil, fmt.Errorf("invalid LLM mode '%s': must be 'cloud' or 'disabled'", cfg.LLM.Mode)
	}
}
