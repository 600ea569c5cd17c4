package interfaces

import "context"

// ScrapeResult is the outcome of fetching a single page: the page title,
// plain text with script/style stripped and whitespace collapsed, and the
// raw HTML body.
type ScrapeResult struct {
	URL        string
	Title      string
	Text       string
	HTML       string
	StatusCode int
}

// ScraperService fetches a page and extracts its text content. Network and
// timeout failures are returned as errors; callers degrade to fallback
// records rather than propagate them.
type ScraperService interface {
	Fetch(ctx context.Context, url string) (*ScrapeResult, error)
	Close() error
}
