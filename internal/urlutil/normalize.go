// Package urlutil provides URL canonicalization and comparison helpers.
package urlutil

import (
	"net/url"
	"strings"
)

// MaxURLLength caps canonical URLs to keep stored keys bounded.
const MaxURLLength = 2000

// trackingParams are query parameters stripped during normalization.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"fbclid":       {},
	"gclid":        {},
}

// Normalize canonicalizes a raw URL string into a comparable form:
// scheme defaulting to https, host lowercased (path case preserved), root
// path collapsed to "/", single trailing slash stripped from non-root paths,
// default ports dropped, tracking parameters removed, and query keys
// re-serialized in ascending order.
//
// Normalize is total: it never fails, returning the trimmed input when the
// URL cannot be parsed. It is idempotent for any input that parses.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}

	// An explicit http:// prefix is the only thing that keeps the scheme http.
	explicitHTTP := hasPrefixFold(trimmed, "http://")

	withScheme := trimmed
	if !hasScheme(trimmed) {
		withScheme = "https://" + trimmed
	}

	// url.Parse is lenient: junk like "://x" survives scheme prefixing with an
	// empty or degenerate host, so a missing hostname counts as a parse failure.
	u, err := url.Parse(withScheme)
	if err != nil || u.Hostname() == "" {
		return truncate(trimmed)
	}

	u.Host = strings.ToLower(u.Host)

	if u.Path == "" {
		u.Path = "/"
	}
	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	// Drop default ports
	if u.Scheme == "http" && strings.HasSuffix(u.Host, ":80") {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	} else if u.Scheme == "https" && strings.HasSuffix(u.Host, ":443") {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	if !explicitHTTP {
		u.Scheme = "https"
	}

	if u.RawQuery != "" {
		query := u.Query()
		for key := range query {
			if _, drop := trackingParams[strings.ToLower(key)]; drop {
				query.Del(key)
			}
		}
		// Encode serializes keys in ascending order, preserving all values
		// under each key.
		u.RawQuery = query.Encode()
	}

	return truncate(u.String())
}

// Hostname extracts the lowercased hostname (no port) from a URL string.
// Returns "" when the URL cannot be parsed.
func Hostname(raw string) string {
	u, err := url.Parse(Normalize(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// PathSegments splits a URL path on "/" dropping empty segments.
func PathSegments(path string) []string {
	segments := make([]string, 0, 4)
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// PathSimilarity scores how alike two URL paths are: the count of equal-index
// segments matching case-insensitively, divided by the larger segment count.
// Two empty paths score 1.0; one empty and one non-empty score 0.0.
func PathSimilarity(a, b string) float64 {
	segsA := PathSegments(a)
	segsB := PathSegments(b)

	if len(segsA) == 0 && len(segsB) == 0 {
		return 1.0
	}
	if len(segsA) == 0 || len(segsB) == 0 {
		return 0.0
	}

	matches := 0
	limit := len(segsA)
	if len(segsB) < limit {
		limit = len(segsB)
	}
	for i := 0; i < limit; i++ {
		if strings.EqualFold(segsA[i], segsB[i]) {
			matches++
		}
	}

	max := len(segsA)
	if len(segsB) > max {
		max = len(segsB)
	}
	return float64(matches) / float64(max)
}

// Fragments breaks a URL into searchable pieces: the scheme and a leading
// "www." are stripped, the remainder is split on path, query and fragment
// delimiters, and only pieces longer than minLen survive.
func Fragments(raw string, minLen int) []string {
	s := Normalize(raw)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")

	fragments := make([]string, 0, 4)
	for _, frag := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '?' || r == '&' || r == '#'
	}) {
		if len(frag) > minLen {
			fragments = append(fragments, frag)
		}
	}
	return fragments
}

// hasScheme reports whether the string starts with a URL scheme per RFC 3986.
func hasScheme(s string) bool {
	for i, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			// valid anywhere in a scheme
		case i > 0 && ((r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.'):
			// valid after the first character
		case r == ':':
			return i > 0 && strings.HasPrefix(s[i:], "://")
		default:
			return false
		}
	}
	return false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func truncate(s string) string {
	if len(s) > MaxURLLength {
		return s[:MaxURLLength]
	}
	return s
}
