package analysis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ternarybob/contendo/internal/models"
)

// Documented defaults for fields the language model may omit or mistype.
// All leniency toward the model's output lives in this file.
const (
	defaultRelevance  = "50"
	defaultVolume     = 500
	defaultDifficulty = 50
	defaultCoverage   = 2 // "medium"
)

// extractFirstJSONObject returns the first balanced {...} span in s,
// tolerating surrounding prose and code fences. String literals and escape
// sequences inside the object are honored when tracking brace depth.
func extractFirstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// parseAnalysisResponse turns free-form language-model output into a fully
// coerced GapAnalysisResult. It fails only when no parsable JSON object can
// be extracted; any plausibly-shaped object coerces without error.
func parseAnalysisResponse(response string) (*models.GapAnalysisResult, error) {
	raw, ok := extractFirstJSONObject(response)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	result := models.NewEmptyGapAnalysisResult(models.AnalysisSourceLLM)
	result.ContentGaps = coerceContentGaps(payload["contentGaps"])
	result.KeywordGaps = coerceKeywordGaps(payload["keywordGaps"])
	result.Advantages = coerceFactors(payload["advantages"], true)
	result.Disadvantages = coerceFactors(payload["disadvantages"], false)
	result.Strategies = coerceStrategies(payload["strategies"])
	return result, nil
}

func coerceContentGaps(v any) []models.ContentGap {
	gaps := []models.ContentGap{}
	for _, item := range asObjectList(v) {
		gaps = append(gaps, models.ContentGap{
			Topic:                   coerceString(item["topic"], "Unknown topic"),
			Description:             coerceString(item["description"], "No description provided"),
			Relevance:               coerceScoreString(item["relevance"], defaultRelevance),
			SuggestedImplementation: coerceString(item["suggestedImplementation"], "No implementation suggested"),
			CompetitorsCovering:     coerceCoverage(item),
			Actionable:              coerceBool(item["actionable"], true),
		})
	}
	return gaps
}

func coerceKeywordGaps(v any) []models.Keyword {
	keywords := []models.Keyword{}
	for _, item := range asObjectList(v) {
		keywords = append(keywords, models.Keyword{
			Keyword:    coerceString(item["keyword"], "unknown keyword"),
			Count:      coerceInt(item["count"], 0),
			Density:    coerceFloat(item["density"], 0),
			Volume:     coerceInt(item["volume"], defaultVolume),
			Difficulty: coerceInt(item["difficulty"], defaultDifficulty),
			InTitle:    coerceBool(item["inTitle"], false),
			InHeadings: coerceBool(item["inHeadings"], false),
		})
	}
	return keywords
}

func coerceFactors(v any, isAdvantage bool) []models.CompetitiveFactor {
	factors := []models.CompetitiveFactor{}
	for _, item := range asObjectList(v) {
		factors = append(factors, models.CompetitiveFactor{
			Area:        coerceString(item["area"], "General"),
			Description: coerceString(item["description"], "No description provided"),
			IsAdvantage: coerceBool(item["isAdvantage"], isAdvantage),
		})
	}
	return factors
}

func coerceStrategies(v any) []models.Strategy {
	strategies := []models.Strategy{}
	for _, item := range asObjectList(v) {
		strategies = append(strategies, models.Strategy{
			Title:          coerceString(item["title"], "Untitled strategy"),
			Description:    coerceString(item["description"], "No description provided"),
			Implementation: coerceString(item["implementation"], "No implementation suggested"),
			Priority:       coercePriority(item["priority"]),
			TimeFrame:      coerceString(item["timeFrame"], "1-3 months"),
		})
	}
	return strategies
}

// coerceCoverage resolves competitorsCovering from the numeric field when
// present, else maps a coverage enum, else defaults to medium coverage.
func coerceCoverage(item map[string]any) int {
	if v, ok := item["competitorsCovering"]; ok {
		return coerceInt(v, defaultCoverage)
	}
	switch strings.ToLower(coerceString(item["competitorCoverage"], "")) {
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	}
	return defaultCoverage
}

func coercePriority(v any) string {
	switch strings.ToLower(coerceString(v, "")) {
	case "high":
		return "high"
	case "low":
		return "low"
	}
	return "medium"
}

// asObjectList accepts a JSON array and keeps its object elements; anything
// else yields an empty list.
func asObjectList(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(list))
	for _, elem := range list {
		if obj, ok := elem.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items
}

func coerceString(v any, def string) string {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) != "" {
			return val
		}
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return def
}

// coerceScoreString normalizes a numeric-or-string score to its string form.
func coerceScoreString(v any, def string) string {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) != "" {
			return val
		}
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return def
}

func coerceInt(v any, def int) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return int(f)
		}
	}
	return def
}

func coerceFloat(v any, def float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return def
}

func coerceBool(v any, def bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return def
}
