package analysis

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/models"
)

// fakeLLM returns a canned response or error.
type fakeLLM struct {
	response string
	err      error
	mode     interfaces.LLMMode
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) HealthCheck(ctx context.Context) error { return nil }

func (f *fakeLLM) GetMode() interfaces.LLMMode {
	if f.mode == "" {
		return interfaces.LLMModeCloud
	}
	return f.mode
}

func (f *fakeLLM) Close() error { return nil }

func testAnalysisConfig() common.AnalysisConfig {
	return common.AnalysisConfig{
		MaxCompetitors:        10,
		RefreshWorkers:        3,
		KeywordsPerCompetitor: 5,
		PersistResults:        false,
	}
}

func testTarget(wordCount int) *models.ContentRecord {
	return &models.ContentRecord{
		ID:    "content_target",
		URL:   "https://mysite.com/blog/seo-guide",
		Title: "SEO Guide",
		Text:  "target content text",
		Metrics: &models.ContentMetrics{
			WordCount: wordCount,
		},
		Keywords: []models.Keyword{
			{Keyword: "optimization", Count: 5},
		},
	}
}

func testCompetitor(id string, wordCount int, keywords ...string) *models.CompetitorRecord {
	record := &models.CompetitorRecord{
		ID:        id,
		ProjectID: "proj1",
		URL:       fmt.Sprintf("https://%s.example.com/", id),
		Metrics:   &models.ContentMetrics{WordCount: wordCount},
	}
	for _, kw := range keywords {
		record.Keywords = append(record.Keywords, models.Keyword{Keyword: kw, Volume: 1000, Difficulty: 30})
	}
	return record
}

func TestAnalyzeNoCompetitors(t *testing.T) {
	svc := NewService(&fakeLLM{}, nil, testAnalysisConfig(), nil)

	result := svc.Analyze(context.Background(), "proj1", testTarget(200), nil)
	require.NotNil(t, result)

	assert.Empty(t, result.ContentGaps)
	assert.Empty(t, result.KeywordGaps)
	assert.Empty(t, result.Advantages)
	assert.Empty(t, result.Disadvantages)
	assert.Empty(t, result.Strategies)
	assert.NotNil(t, result.Competitors)
	assert.Empty(t, result.Competitors)
}

func TestAnalyzeFallbackShortContent(t *testing.T) {
	competitors := []*models.CompetitorRecord{
		testCompetitor("a", 500),
		testCompetitor("b", 700),
	}

	llm := &fakeLLM{err: fmt.Errorf("service unavailable")}
	svc := NewService(llm, nil, testAnalysisConfig(), nil)

	// Target 200 words vs avg 600: below the 0.8x threshold.
	result := svc.Analyze(context.Background(), "proj1", testTarget(200), competitors)

	assert.Equal(t, models.AnalysisSourceHeuristic, result.Source)

	require.Len(t, result.ContentGaps, 1)
	gap := result.ContentGaps[0]
	assert.Equal(t, "Content length", gap.Topic)
	assert.Equal(t, 2, gap.CompetitorsCovering)

	require.Len(t, result.Disadvantages, 1)
	assert.Contains(t, result.Disadvantages[0].Description, "200")
	assert.Contains(t, result.Disadvantages[0].Description, "600")

	require.Len(t, result.Strategies, 1)
	assert.Equal(t, "Expand content", result.Strategies[0].Title)
	assert.Equal(t, "high", result.Strategies[0].Priority)

	assert.Len(t, result.Competitors, 2)
}

func TestAnalyzeFallbackLongContent(t *testing.T) {
	competitors := []*models.CompetitorRecord{
		testCompetitor("a", 500),
		testCompetitor("b", 700),
	}

	svc := NewService(&fakeLLM{mode: interfaces.LLMModeDisabled}, nil, testAnalysisConfig(), nil)

	// Target 800 words vs avg 600: above the 1.2x threshold.
	result := svc.Analyze(context.Background(), "proj1", testTarget(800), competitors)

	assert.Empty(t, result.ContentGaps)
	require.Len(t, result.Advantages, 1)
	assert.True(t, result.Advantages[0].IsAdvantage)

	// No length strategy triggered, so the default monitoring strategy fills in.
	require.Len(t, result.Strategies, 1)
	assert.Equal(t, "Monitor competitor content", result.Strategies[0].Title)
	assert.Equal(t, "low", result.Strategies[0].Priority)
}

func TestAnalyzeFallbackKeywordGaps(t *testing.T) {
	competitors := []*models.CompetitorRecord{
		testCompetitor("a", 600, "backlinks", "schema", "optimization"),
		testCompetitor("b", 600, "backlinks", "schema", "sitemaps"),
		testCompetitor("c", 600, "backlinks", "sitemaps"),
	}

	svc := NewService(&fakeLLM{mode: interfaces.LLMModeDisabled}, nil, testAnalysisConfig(), nil)

	result := svc.Analyze(context.Background(), "proj1", testTarget(600), competitors)

	// "optimization" is already a target keyword; "backlinks" (3), "schema" (2)
	// and "sitemaps" (2) qualify as gaps, most common first.
	require.Len(t, result.KeywordGaps, 3)
	assert.Equal(t, "backlinks", result.KeywordGaps[0].Keyword)
	assert.Equal(t, 3, result.KeywordGaps[0].Count)
	assert.Equal(t, 1000, result.KeywordGaps[0].Volume)
	for _, kw := range result.KeywordGaps {
		assert.NotEqual(t, "optimization", kw.Keyword)
		assert.Equal(t, 0.0, kw.Density)
		assert.False(t, kw.InTitle)
		assert.False(t, kw.InHeadings)
	}
}

func TestAnalyzeKeywordGapsLimitedToFive(t *testing.T) {
	var competitorsA, competitorsB []models.Keyword
	for i := 0; i < 8; i++ {
		kw := models.Keyword{Keyword: fmt.Sprintf("keyword%d", i)}
		competitorsA = append(competitorsA, kw)
		competitorsB = append(competitorsB, kw)
	}
	a := testCompetitor("a", 600)
	a.Keywords = competitorsA
	b := testCompetitor("b", 600)
	b.Keywords = competitorsB

	svc := NewService(&fakeLLM{mode: interfaces.LLMModeDisabled}, nil, testAnalysisConfig(), nil)
	result := svc.Analyze(context.Background(), "proj1", testTarget(600), []*models.CompetitorRecord{a, b})

	assert.Len(t, result.KeywordGaps, 5)
}

func TestAnalyzeEmptyTargetText(t *testing.T) {
	competitors := []*models.CompetitorRecord{testCompetitor("a", 500)}

	llm := &fakeLLM{response: `{"contentGaps":[]}`}
	svc := NewService(llm, nil, testAnalysisConfig(), nil)

	target := testTarget(0)
	target.Text = "   "

	result := svc.Analyze(context.Background(), "proj1", target, competitors)

	// No LLM call is made when there is nothing to analyze.
	assert.Equal(t, 0, llm.calls)
	require.Len(t, result.ContentGaps, 1)
	assert.Equal(t, "seo guide", result.ContentGaps[0].Topic)
	assert.Equal(t, 1, result.ContentGaps[0].CompetitorsCovering)
	assert.Len(t, result.Competitors, 1)
}

func TestAnalyzeLLMPath(t *testing.T) {
	competitors := []*models.CompetitorRecord{testCompetitor("a", 500)}

	llm := &fakeLLM{response: `Here you go:
{"contentGaps":[{"topic":"Case studies","relevance":"75"}],"strategies":[{"title":"Publish case studies","priority":"high"}]}`}
	svc := NewService(llm, nil, testAnalysisConfig(), nil)

	result := svc.Analyze(context.Background(), "proj1", testTarget(600), competitors)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, models.AnalysisSourceLLM, result.Source)
	require.Len(t, result.ContentGaps, 1)
	assert.Equal(t, "Case studies", result.ContentGaps[0].Topic)
	require.Len(t, result.Strategies, 1)
	assert.Len(t, result.Competitors, 1)
}

func TestAnalyzeLLMUnparsableFallsBack(t *testing.T) {
	competitors := []*models.CompetitorRecord{
		testCompetitor("a", 500),
		testCompetitor("b", 700),
	}

	llm := &fakeLLM{response: "I could not produce JSON, sorry."}
	svc := NewService(llm, nil, testAnalysisConfig(), nil)

	result := svc.Analyze(context.Background(), "proj1", testTarget(200), competitors)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, models.AnalysisSourceHeuristic, result.Source)
	require.Len(t, result.ContentGaps, 1)
	assert.Equal(t, "Content length", result.ContentGaps[0].Topic)
}

func TestAnalyzeDisabledLLMNeverCalled(t *testing.T) {
	llm := &fakeLLM{mode: interfaces.LLMModeDisabled, response: `{"contentGaps":[]}`}
	svc := NewService(llm, nil, testAnalysisConfig(), nil)

	result := svc.Analyze(context.Background(), "proj1", testTarget(600), []*models.CompetitorRecord{testCompetitor("a", 500)})

	assert.Equal(t, 0, llm.calls)
	assert.Equal(t, models.AnalysisSourceHeuristic, result.Source)
}

func TestAnalyzeRespectsMaxCompetitors(t *testing.T) {
	config := testAnalysisConfig()
	config.MaxCompetitors = 2

	var competitors []*models.CompetitorRecord
	for i := 0; i < 5; i++ {
		competitors = append(competitors, testCompetitor(fmt.Sprintf("c%d", i), 600))
	}

	svc := NewService(&fakeLLM{mode: interfaces.LLMModeDisabled}, nil, config, nil)
	result := svc.Analyze(context.Background(), "proj1", testTarget(600), competitors)

	assert.Len(t, result.Competitors, 2)
}

func TestBuildPromptLimitsKeywords(t *testing.T) {
	competitor := testCompetitor("a", 500,
		"one", "two", "three", "four", "five", "six", "seven")

	prompt := buildPrompt(testTarget(600), []*models.CompetitorRecord{competitor}, 5)

	assert.Contains(t, prompt, "https://mysite.com/blog/seo-guide")
	assert.Contains(t, prompt, "five")
	assert.NotContains(t, prompt, "six")
	assert.NotContains(t, prompt, "seven")
}
