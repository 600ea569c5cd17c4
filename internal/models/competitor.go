package models

import "time"

// MaxStoredBodyBytes caps the raw text/html retained on a competitor record.
// Full bodies are only needed transiently for metric computation.
const MaxStoredBodyBytes = 50 * 1024

// CompetitorRecord is a tracked external page belonging to a project.
// At most one record exists per (ProjectID, normalized URL); adding a
// duplicate recomputes the existing record instead of inserting.
type CompetitorRecord struct {
	ID        string          `json:"id"` // competitor_{uuid}
	ProjectID string          `json:"project_id" badgerhold:"index"`
	URL       string          `json:"url" badgerhold:"index"`
	Title     string          `json:"title"`
	Metrics   *ContentMetrics `json:"metrics,omitempty"`
	Keywords  []Keyword       `json:"keywords"`
	Strengths []string        `json:"strengths"`
	Text      string          `json:"text,omitempty"` // truncated to MaxStoredBodyBytes
	HTML      string          `json:"html,omitempty"` // truncated to MaxStoredBodyBytes

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WordCount returns the recorded word count, zero when metrics are absent.
func (c *CompetitorRecord) WordCount() int {
	if c == nil || c.Metrics == nil {
		return 0
	}
	return c.Metrics.WordCount
}

// TruncateBody clamps the stored text/html to MaxStoredBodyBytes.
func (c *CompetitorRecord) TruncateBody() {
	if len(c.Text) > MaxStoredBodyBytes {
		c.Text = c.Text[:MaxStoredBodyBytes]
	}
	if len(c.HTML) > MaxStoredBodyBytes {
		c.HTML = c.HTML[:MaxStoredBodyBytes]
	}
}
