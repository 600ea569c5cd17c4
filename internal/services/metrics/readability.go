package metrics

import (
	"regexp"
	"strings"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	nonAlpha      = regexp.MustCompile(`[^a-z]`)
	leadingY      = regexp.MustCompile(`^y`)
	silentE       = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	vowelGroups   = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// countSentences approximates sentence count by splitting on terminal
// punctuation runs and counting non-empty parts.
func countSentences(text string) int {
	count := 0
	for _, part := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// countSyllables estimates syllables in a single word. Short words count as
// one syllable; longer words count vowel groups after dropping a leading y
// and a trailing silent-e pattern, with a floor of one.
func countSyllables(word string) int {
	w := nonAlpha.ReplaceAllString(strings.ToLower(word), "")
	if w == "" {
		return 0
	}
	if len(w) <= 3 {
		return 1
	}

	w = leadingY.ReplaceAllString(w, "")
	w = silentE.ReplaceAllString(w, "")

	groups := vowelGroups.FindAllString(w, -1)
	if len(groups) == 0 {
		return 1
	}
	return len(groups)
}

// fleschReadingEase computes the Flesch Reading Ease score for the given
// counts, clamped to [0,100]. Zero sentences or words yield zero.
func fleschReadingEase(wordCount, sentenceCount, syllableCount int) float64 {
	if wordCount == 0 || sentenceCount == 0 {
		return 0
	}

	score := 206.835 -
		1.015*(float64(wordCount)/float64(sentenceCount)) -
		84.6*(float64(syllableCount)/float64(wordCount))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
