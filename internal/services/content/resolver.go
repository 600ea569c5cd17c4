package content

import (
	"context"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/models"
	"github.com/ternarybob/contendo/internal/urlutil"
)

// Resolution is the outcome of a resolver lookup. Exact is true only when a
// stored URL string equaled one of the exact-match variants.
type Resolution struct {
	Record   *models.ContentRecord `json:"record"`
	Exact    bool                  `json:"exact"`
	Strategy string                `json:"strategy"`
}

// Resolver finds the best-matching stored content record for a URL using a
// cascade of matching strategies. Strategies are isolated: a failure in one
// candidate never aborts the remaining candidates or strategies.
type Resolver struct {
	storage interfaces.ContentStorage
	logger  arbor.ILogger
}

// NewResolver creates a resolver over the given content storage.
func NewResolver(storage interfaces.ContentStorage, logger arbor.ILogger) *Resolver {
	return &Resolver{
		storage: storage,
		logger:  logger,
	}
}

// Resolve runs the strategy cascade and returns nil when every strategy
// comes up empty. It never returns an error to the caller.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) *Resolution {
	if strings.TrimSpace(rawURL) == "" {
		return nil
	}

	normalized := urlutil.Normalize(rawURL)

	if record := r.resolveExact(ctx, rawURL); record != nil {
		return &Resolution{Record: record, Exact: true, Strategy: "exact"}
	}
	if record := r.resolveCaseInsensitive(ctx, normalized); record != nil {
		return &Resolution{Record: record, Exact: false, Strategy: "case_insensitive"}
	}
	if record := r.resolveDomain(ctx, normalized); record != nil {
		return &Resolution{Record: record, Exact: false, Strategy: "domain"}
	}
	if record := r.resolveFragments(ctx, normalized); record != nil {
		return &Resolution{Record: record, Exact: false, Strategy: "fragment"}
	}

	if r.logger != nil {
		r.logger.Debug().Str("url", normalized).Msg("No content record resolved")
	}
	return nil
}

// resolveExact tries exact string matches against the input as given and its
// trailing-slash variants. Case differences are left to the next strategy so
// that exact=true means the stored string really equaled what was asked for.
func (r *Resolver) resolveExact(ctx context.Context, rawURL string) *models.ContentRecord {
	trimmed := strings.TrimSpace(rawURL)
	variants := []string{
		trimmed,
		strings.TrimSuffix(trimmed, "/"),
		trimmed + "/",
	}

	seen := make(map[string]struct{}, len(variants))
	for _, variant := range variants {
		if variant == "" {
			continue
		}
		if _, dup := seen[variant]; dup {
			continue
		}
		seen[variant] = struct{}{}

		record, err := r.storage.GetContentByURL(ctx, variant)
		if err != nil {
			r.warnStrategy("exact", variant, err)
			continue
		}
		if record != nil {
			return record
		}
	}
	return nil
}

func (r *Resolver) resolveCaseInsensitive(ctx context.Context, normalized string) *models.ContentRecord {
	pattern, err := regexp.Compile(`(?i)^` + regexp.QuoteMeta(normalized) + `$`)
	if err != nil {
		r.warnStrategy("case_insensitive", normalized, err)
		return nil
	}

	record, err := r.storage.FindContentByURLRegex(ctx, pattern)
	if err != nil {
		r.warnStrategy("case_insensitive", normalized, err)
		return nil
	}
	return record
}

// resolveDomain finds records sharing the URL's hostname and picks the one
// with the most similar path, accepting it only above a 0.5 similarity
// threshold; otherwise the most recent domain match wins.
func (r *Resolver) resolveDomain(ctx context.Context, normalized string) *models.ContentRecord {
	hostname := urlutil.Hostname(normalized)
	if hostname == "" {
		return nil
	}

	candidates, err := r.storage.FindContentByURLSubstring(ctx, hostname)
	if err != nil {
		r.warnStrategy("domain", hostname, err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	targetPath := urlPath(normalized)

	var best *models.ContentRecord
	bestScore := -1.0
	for _, candidate := range candidates {
		score := urlutil.PathSimilarity(targetPath, urlPath(candidate.URL))
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore > 0.5 {
		return best
	}
	// Candidates are ordered newest first.
	return candidates[0]
}

// resolveFragments queries for each URL fragment longer than 3 characters in
// order, returning the first record containing one.
func (r *Resolver) resolveFragments(ctx context.Context, normalized string) *models.ContentRecord {
	for _, fragment := range urlutil.Fragments(normalized, 3) {
		records, err := r.storage.FindContentByURLSubstring(ctx, fragment)
		if err != nil {
			r.warnStrategy("fragment", fragment, err)
			continue
		}
		if len(records) > 0 {
			return records[0]
		}
	}
	return nil
}

func (r *Resolver) warnStrategy(strategy, candidate string, err error) {
	if r.logger != nil {
		r.logger.Warn().
			Str("strategy", strategy).
			Str("candidate", candidate).
			Err(err).
			Msg("Resolver strategy candidate failed")
	}
}

// urlPath extracts the path portion of a normalized URL for similarity
// scoring. A parse failure yields an empty path.
func urlPath(rawURL string) string {
	s := rawURL
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	if idx := strings.IndexAny(s, "?#"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, "/"); idx >= 0 {
		return s[idx:]
	}
	return ""
}
