package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ternarybob/contendo/internal/models"
)

const (
	shortContentRatio = 0.8
	longContentRatio  = 1.2
	keywordGapLimit   = 5
	minGapOccurrences = 2
)

// fallbackAnalysis is the deterministic path: a metric comparison against
// the competitor average plus a cross-competitor keyword frequency scan. It
// is used whenever the language-model path fails, times out, or returns
// unparsable output, and when the LLM is disabled outright.
func fallbackAnalysis(target *models.ContentRecord, competitors []*models.CompetitorRecord) *models.GapAnalysisResult {
	result := models.NewEmptyGapAnalysisResult(models.AnalysisSourceHeuristic)

	targetWords := 0
	if target.Metrics != nil {
		targetWords = target.Metrics.WordCount
	}

	avgWords := competitorAvgWordCount(competitors)

	switch {
	case avgWords > 0 && float64(targetWords) < shortContentRatio*avgWords:
		result.ContentGaps = append(result.ContentGaps, models.ContentGap{
			Topic:                   "Content length",
			Description:             fmt.Sprintf("Competitors average %.0f words while the target has %d", avgWords, targetWords),
			Relevance:               "80",
			SuggestedImplementation: "Expand the content to match competitor depth",
			CompetitorsCovering:     len(competitors),
			Actionable:              true,
		})
		result.Disadvantages = append(result.Disadvantages, models.CompetitiveFactor{
			Area:        "Content length",
			Description: fmt.Sprintf("Target word count %d is below the competitor average of %.0f", targetWords, avgWords),
			IsAdvantage: false,
		})
		result.Strategies = append(result.Strategies, models.Strategy{
			Title:          "Expand content",
			Description:    "Increase content depth to close the length gap with competitors",
			Implementation: "Add sections covering the topics competitors address in their additional content",
			Priority:       "high",
			TimeFrame:      "2-4 weeks",
		})
	case avgWords > 0 && float64(targetWords) > longContentRatio*avgWords:
		result.Advantages = append(result.Advantages, models.CompetitiveFactor{
			Area:        "Content length",
			Description: fmt.Sprintf("Target word count %d exceeds the competitor average of %.0f", targetWords, avgWords),
			IsAdvantage: true,
		})
	}

	result.KeywordGaps = keywordGaps(target, competitors)

	if len(result.Strategies) == 0 {
		result.Strategies = append(result.Strategies, models.Strategy{
			Title:          "Monitor competitor content",
			Description:    "Track competitor content changes and keyword positioning over time",
			Implementation: "Re-run competitor analysis periodically and review new keyword gaps",
			Priority:       "low",
			TimeFrame:      "Ongoing",
		})
	}

	return result
}

func competitorAvgWordCount(competitors []*models.CompetitorRecord) float64 {
	if len(competitors) == 0 {
		return 0
	}
	total := 0
	for _, competitor := range competitors {
		total += competitor.WordCount()
	}
	return float64(total) / float64(len(competitors))
}

// keywordGaps finds keywords appearing in at least two competitors that the
// target does not already cover, ranked by how many competitors use them.
func keywordGaps(target *models.ContentRecord, competitors []*models.CompetitorRecord) []models.Keyword {
	type stat struct {
		occurrences   int
		maxVolume     int
		maxDifficulty int
	}

	stats := make(map[string]*stat)
	order := make([]string, 0)
	for _, competitor := range competitors {
		seen := make(map[string]struct{})
		for _, kw := range competitor.Keywords {
			key := strings.ToLower(kw.Keyword)
			if key == "" {
				continue
			}
			// Count each competitor once per keyword.
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			entry, ok := stats[key]
			if !ok {
				entry = &stat{}
				stats[key] = entry
				order = append(order, key)
			}
			entry.occurrences++
			if kw.Volume > entry.maxVolume {
				entry.maxVolume = kw.Volume
			}
			if kw.Difficulty > entry.maxDifficulty {
				entry.maxDifficulty = kw.Difficulty
			}
		}
	}

	covered := make(map[string]struct{}, len(target.Keywords))
	for _, kw := range target.Keywords {
		covered[strings.ToLower(kw.Keyword)] = struct{}{}
	}

	candidates := make([]string, 0, len(order))
	for _, key := range order {
		if stats[key].occurrences < minGapOccurrences {
			continue
		}
		if _, has := covered[key]; has {
			continue
		}
		candidates = append(candidates, key)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return stats[candidates[i]].occurrences > stats[candidates[j]].occurrences
	})
	if len(candidates) > keywordGapLimit {
		candidates = candidates[:keywordGapLimit]
	}

	gaps := make([]models.Keyword, 0, len(candidates))
	for _, key := range candidates {
		entry := stats[key]
		gaps = append(gaps, models.Keyword{
			Keyword:    key,
			Count:      entry.occurrences,
			Density:    0,
			Volume:     entry.maxVolume,
			Difficulty: entry.maxDifficulty,
			InTitle:    false,
			InHeadings: false,
		})
	}
	return gaps
}
