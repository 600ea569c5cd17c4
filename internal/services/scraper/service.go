package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/interfaces"
	"golang.org/x/time/rate"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Service fetches competitor pages over HTTP and extracts their text
// content. Requests to the same host are rate limited so repeated refreshes
// do not hammer competitor sites.
type Service struct {
	config common.ScraperConfig
	client *http.Client
	logger arbor.ILogger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewService creates a scraper service from the given configuration.
func NewService(config common.ScraperConfig, logger arbor.ILogger) interfaces.ScraperService {
	return &Service{
		config: config,
		client: &http.Client{
			Timeout: config.RequestTimeout.Std(),
		},
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Fetch downloads a page and extracts its title and plain text. The request
// is bounded by the configured timeout and the response body by the
// configured size cap. Non-2xx responses are errors.
func (s *Service) Fetch(ctx context.Context, pageURL string) (*interfaces.ScrapeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", s.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	if err := s.waitForHost(ctx, req.URL.Hostname()); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(s.config.MaxBodySize)))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	html := string(body)
	title, text := extractContent(html)

	if s.logger != nil {
		s.logger.Debug().
			Str("url", pageURL).
			Int("status", resp.StatusCode).
			Int("body_size", len(body)).
			Int("text_length", len(text)).
			Msg("Fetched page")
	}

	return &interfaces.ScrapeResult{
		URL:        pageURL,
		Title:      title,
		Text:       text,
		HTML:       html,
		StatusCode: resp.StatusCode,
	}, nil
}

// Close releases scraper resources. The HTTP client holds none beyond idle
// connections.
func (s *Service) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// waitForHost blocks until the per-host rate limiter permits another request.
func (s *Service) waitForHost(ctx context.Context, host string) error {
	if s.config.RequestDelay <= 0 {
		return nil
	}

	s.mu.Lock()
	limiter, ok := s.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(s.config.RequestDelay.Std()), 1)
		s.limiters[host] = limiter
	}
	s.mu.Unlock()

	return limiter.Wait(ctx)
}

// extractContent parses HTML and returns the page title plus body text with
// script, style and chrome elements removed and whitespace collapsed. An
// unparsable document yields the raw input with whitespace collapsed.
func extractContent(html string) (title, text string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", cleanWhitespace(html)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find("script, style, noscript, nav, footer, aside").Remove()
	text = cleanWhitespace(doc.Find("body").Text())
	if text == "" {
		text = cleanWhitespace(doc.Text())
	}
	return title, text
}

// cleanWhitespace collapses whitespace runs into single spaces.
func cleanWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}
