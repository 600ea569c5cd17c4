package analysis

import (
	"fmt"
	"strings"

	"github.com/ternarybob/contendo/internal/models"
)

const systemPrompt = `You are a competitive content analyst for an SEO platform. ` +
	`Respond with a single JSON object and no surrounding commentary.`

// buildPrompt summarizes the target and competitor set into a compact
// analysis request. Each competitor contributes at most keywordsPerCompetitor
// keywords to keep the prompt bounded.
func buildPrompt(target *models.ContentRecord, competitors []*models.CompetitorRecord, keywordsPerCompetitor int) string {
	var sb strings.Builder

	sb.WriteString("Analyze the content gaps between a target page and its competitors.\n\n")
	sb.WriteString("Target page:\n")
	fmt.Fprintf(&sb, "- URL: %s\n", target.URL)
	if target.Title != "" {
		fmt.Fprintf(&sb, "- Title: %s\n", target.Title)
	}
	wordCount := 0
	if target.Metrics != nil {
		wordCount = target.Metrics.WordCount
	}
	fmt.Fprintf(&sb, "- Word count: %d\n", wordCount)
	if keywords := topKeywords(target.Keywords, keywordsPerCompetitor); len(keywords) > 0 {
		fmt.Fprintf(&sb, "- Keywords: %s\n", strings.Join(keywords, ", "))
	}

	sb.WriteString("\nCompetitors:\n")
	for i, competitor := range competitors {
		fmt.Fprintf(&sb, "%d. %s (%d words)", i+1, competitor.URL, competitor.WordCount())
		if keywords := topKeywords(competitor.Keywords, keywordsPerCompetitor); len(keywords) > 0 {
			fmt.Fprintf(&sb, " keywords: %s", strings.Join(keywords, ", "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`
Return a JSON object with this shape:
{
  "contentGaps": [{"topic": "", "description": "", "relevance": "0-100", "suggestedImplementation": "", "competitorsCovering": 0, "actionable": true}],
  "keywordGaps": [{"keyword": "", "volume": 0, "difficulty": 0}],
  "advantages": [{"area": "", "description": ""}],
  "disadvantages": [{"area": "", "description": ""}],
  "strategies": [{"title": "", "description": "", "implementation": "", "priority": "high|medium|low", "timeFrame": ""}]
}`)

	return sb.String()
}

func topKeywords(keywords []models.Keyword, limit int) []string {
	if limit <= 0 || len(keywords) == 0 {
		return nil
	}
	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	texts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		texts = append(texts, kw.Keyword)
	}
	return texts
}
