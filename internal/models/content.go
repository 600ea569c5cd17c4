package models

import "time"

// ContentMetrics holds the objective metrics computed for a piece of content.
// Markup-derived counts (headings, images, links, paragraphs) are zero when
// no HTML was available at analysis time.
type ContentMetrics struct {
	WordCount        int     `json:"wordCount"`
	ReadabilityScore float64 `json:"readabilityScore"` // Flesch Reading Ease, clamped to [0,100]
	KeywordDensity   float64 `json:"keywordDensity"`   // average density of top keywords
	HeadingCount     int     `json:"headingCount"`
	ImageCount       int     `json:"imageCount"`
	LinkCount        int     `json:"linkCount"`
	ParagraphCount   int     `json:"paragraphCount"`
}

// Keyword is a normalized token or phrase extracted from content.
// Volume and Difficulty are estimated placeholders, not authoritative data.
type Keyword struct {
	Keyword    string  `json:"keyword"`
	Count      int     `json:"count"`
	Density    float64 `json:"density"` // count/wordCount*100, 2 decimal places
	Volume     int     `json:"volume"`
	Difficulty int     `json:"difficulty"`
	InTitle    bool    `json:"inTitle"`
	InHeadings bool    `json:"inHeadings"`
}

// ContentRecord is a stored document under analysis.
type ContentRecord struct {
	ID       string          `json:"id"` // content_{uuid}, empty until persisted
	URL      string          `json:"url" badgerhold:"index"`
	Title    string          `json:"title"`
	Text     string          `json:"text"`
	Keywords []Keyword       `json:"keywords"`
	Metrics  *ContentMetrics `json:"metrics,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasMetrics reports whether metrics have been computed for this record.
func (c *ContentRecord) HasMetrics() bool {
	return c != nil && c.Metrics != nil
}

// KeywordTexts returns the normalized keyword strings of the record.
func (c *ContentRecord) KeywordTexts() []string {
	texts := make([]string, 0, len(c.Keywords))
	for _, kw := range c.Keywords {
		texts = append(texts, kw.Keyword)
	}
	return texts
}
