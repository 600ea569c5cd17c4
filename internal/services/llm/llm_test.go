package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/interfaces"
)

func TestConvertMessagesToClaude(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
		{Role: "user", Content: "analyze"},
	}

	claudeMessages, systemText, err := convertMessagesToClaude(messages)
	require.NoError(t, err)
	assert.Equal(t, "be terse", systemText)
	assert.Len(t, claudeMessages, 3)
}

func TestConvertMessagesToClaudeRequiresUser(t *testing.T) {
	_, _, err := convertMessagesToClaude([]interfaces.Message{
		{Role: "system", Content: "only system"},
	})
	assert.Error(t, err)
}

func TestConvertMessagesToGemini(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	}

	contents, systemText, err := convertMessagesToGemini(messages)
	require.NoError(t, err)
	assert.Equal(t, "be terse", systemText)
	require.Len(t, contents, 2)
	assert.Equal(t, "user", string(contents[0].Role))
	assert.Equal(t, "model", string(contents[1].Role))
}

func TestDisabledService(t *testing.T) {
	svc := NewDisabledService()

	assert.Equal(t, interfaces.LLMModeDisabled, svc.GetMode())
	assert.NoError(t, svc.HealthCheck(context.Background()))

	_, err := svc.Chat(context.Background(), []interfaces.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
	assert.NoError(t, svc.Close())
}

func TestFactoryModes(t *testing.T) {
	logger := arbor.NewLogger()

	cfg := common.NewDefaultConfig()
	cfg.LLM.Mode = "disabled"
	svc, err := NewLLMService(cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, interfaces.LLMModeDisabled, svc.GetMode())

	cfg.LLM.Mode = "cloud"
	cfg.LLM.Provider = "nonsense"
	_, err = NewLLMService(cfg, logger)
	assert.Error(t, err)

	cfg.LLM.Mode = "invalid"
	_, err = NewLLMService(cfg, logger)
	assert.Error(t, err)

	// Cloud mode without an API key fails fast.
	cfg.LLM.Mode = "cloud"
	cfg.LLM.Provider = "claude"
	cfg.LLM.Claude.APIKey = ""
	_, err = NewLLMService(cfg, logger)
	assert.Error(t, err)
}
