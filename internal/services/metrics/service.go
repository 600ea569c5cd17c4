package metrics

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/models"
)

const (
	keywordCandidates = 20
	keywordLimit      = 10
	minKeywordLength  = 3 // tokens must be strictly longer
)

var nonWordChars = regexp.MustCompile(`[^a-z0-9]`)

// Service computes content metrics, keywords and strength signals from
// plain text plus optional HTML markup.
type Service struct {
	estimator interfaces.VolumeEstimator
	logger    arbor.ILogger
}

// Analysis is the combined output of a metrics computation.
type Analysis struct {
	Metrics   *models.ContentMetrics
	Keywords  []models.Keyword
	Strengths []string
}

// NewService creates a metrics service. A nil estimator falls back to the
// seeded random placeholder.
func NewService(estimator interfaces.VolumeEstimator, logger arbor.ILogger) *Service {
	if estimator == nil {
		estimator = NewRandomEstimator(1)
	}
	return &Service{
		estimator: estimator,
		logger:    logger,
	}
}

// Compute analyzes text and optional HTML markup. Empty text produces zeroed
// metrics, no keywords and a single placeholder strength so callers always
// get a well-formed result.
func (s *Service) Compute(text, html string) *Analysis {
	markup := parseMarkup(html)

	if strings.TrimSpace(text) == "" {
		return &Analysis{
			Metrics:   &models.ContentMetrics{},
			Keywords:  []models.Keyword{},
			Strengths: []string{"No content available for analysis"},
		}
	}

	words := strings.Fields(text)
	wordCount := len(words)

	sentenceCount := countSentences(text)
	syllableCount := 0
	for _, w := range words {
		syllableCount += countSyllables(w)
	}

	keywords := s.extractKeywords(words, wordCount, markup)

	metrics := &models.ContentMetrics{
		WordCount:        wordCount,
		ReadabilityScore: fleschReadingEase(wordCount, sentenceCount, syllableCount),
		KeywordDensity:   averageDensity(keywords),
		HeadingCount:     markup.headings,
		ImageCount:       markup.images,
		LinkCount:        markup.links,
		ParagraphCount:   markup.paragraphs,
	}

	if s.logger != nil {
		s.logger.Debug().
			Int("word_count", wordCount).
			Int("keywords", len(keywords)).
			Float64("readability", metrics.ReadabilityScore).
			Msg("Computed content metrics")
	}

	return &Analysis{
		Metrics:   metrics,
		Keywords:  keywords,
		Strengths: deriveStrengths(metrics, keywords),
	}
}

// extractKeywords tokenizes the word list, drops short tokens and stop
// words, ranks the remainder by frequency and keeps the top entries with
// density and placement flags attached.
func (s *Service) extractKeywords(words []string, wordCount int, markup markupCounts) []models.Keyword {
	freq := make(map[string]int)
	for _, w := range words {
		token := nonWordChars.ReplaceAllString(strings.ToLower(w), "")
		if len(token) <= minKeywordLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		freq[token]++
	}

	type entry struct {
		token string
		count int
	}
	entries := make([]entry, 0, len(freq))
	for token, count := range freq {
		entries = append(entries, entry{token, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].token < entries[j].token
	})

	if len(entries) > keywordCandidates {
		entries = entries[:keywordCandidates]
	}
	if len(entries) > keywordLimit {
		entries = entries[:keywordLimit]
	}

	keywords := make([]models.Keyword, 0, len(entries))
	for _, e := range entries {
		volume, difficulty := s.estimator.Estimate(e.token)
		keywords = append(keywords, models.Keyword{
			Keyword:    e.token,
			Count:      e.count,
			Density:    round2(float64(e.count) / float64(wordCount) * 100),
			Volume:     volume,
			Difficulty: difficulty,
			InTitle:    strings.Contains(markup.titleText, e.token),
			InHeadings: strings.Contains(markup.headingText, e.token),
		})
	}
	return keywords
}

// averageDensity is the mean density of the extracted keywords, rounded to
// two decimal places. No keywords yields zero.
func averageDensity(keywords []models.Keyword) float64 {
	if len(keywords) == 0 {
		return 0
	}
	sum := 0.0
	for _, kw := range keywords {
		sum += kw.Density
	}
	return round2(sum / float64(len(keywords)))
}

// deriveStrengths maps metric thresholds to human-readable strength
// statements. Content that clears no threshold gets a baseline entry.
func deriveStrengths(metrics *models.ContentMetrics, keywords []models.Keyword) []string {
	var strengths []string

	if metrics.WordCount > 1000 {
		strengths = append(strengths, "Comprehensive content length")
	}
	if metrics.ReadabilityScore > 60 {
		strengths = append(strengths, "Good readability")
	}
	if metrics.HeadingCount > 3 {
		strengths = append(strengths, "Well-structured with headings")
	}
	if metrics.ImageCount > 2 {
		strengths = append(strengths, "Rich visual content")
	}
	if metrics.LinkCount > 3 {
		strengths = append(strengths, "Strong internal/external linking")
	}
	if len(keywords) > 5 {
		strengths = append(strengths, "Broad keyword coverage")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Basic content structure")
	}
	return strengths
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
