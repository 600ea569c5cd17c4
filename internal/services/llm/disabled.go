package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/contendo/internal/interfaces"
)

// DisabledService is the LLMService used when no provider is configured.
// Chat always fails, which routes every analysis through the deterministic
// fallback path.
type DisabledService struct{}

// NewDisabledService creates a disabled LLM service.
func NewDisabledService() *DisabledService {
	return &DisabledService{}
}

func (s *DisabledService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return "", fmt.Errorf("LLM service is disabled")
}

func (s *DisabledService) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *DisabledService) GetMode() interfaces.LLMMode {
	return interfaces.LLMModeDisabled
}

func (s *DisabledService) Close() error {
	return nil
}
