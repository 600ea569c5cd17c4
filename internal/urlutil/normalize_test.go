package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare domain gets https scheme and root path",
			input:    "example.com",
			expected: "https://example.com/",
		},
		{
			name:     "explicit http preserved, default port stripped, host lowercased, path case preserved",
			input:    "HTTP://Example.com:80/Path/",
			expected: "http://example.com/Path",
		},
		{
			name:     "https default port stripped",
			input:    "https://example.com:443/page",
			expected: "https://example.com/page",
		},
		{
			name:     "scheme upgraded to https when not explicit http",
			input:    "example.com/blog",
			expected: "https://example.com/blog",
		},
		{
			name:     "trailing slash stripped from non-root path",
			input:    "https://example.com/a/b/",
			expected: "https://example.com/a/b",
		},
		{
			name:     "root path collapsed to slash",
			input:    "https://example.com",
			expected: "https://example.com/",
		},
		{
			name:     "tracking parameters removed",
			input:    "https://example.com/p?utm_source=x&utm_medium=y&id=7",
			expected: "https://example.com/p?id=7",
		},
		{
			name:     "query keys sorted ascending",
			input:    "https://example.com/p?z=1&a=2",
			expected: "https://example.com/p?a=2&z=1",
		},
		{
			name:     "multi-valued keys keep all values",
			input:    "https://example.com/p?tag=b&tag=a&id=1",
			expected: "https://example.com/p?id=1&tag=b&tag=a",
		},
		{
			name:     "fbclid and gclid removed",
			input:    "https://example.com/p?fbclid=abc&gclid=def&q=test",
			expected: "https://example.com/p?q=test",
		},
		{
			name:     "whitespace trimmed",
			input:    "  https://example.com/page  ",
			expected: "https://example.com/page",
		},
		{
			name:     "empty input stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"example.com",
		"HTTP://Example.com:80/Path/",
		"https://example.com/p?utm_source=x&z=1&a=2",
		"https://www.example.com/a/b/c/",
		"example.com/path?tag=b&tag=a",
		"http://example.com:8080/x",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		assert.Equal(t, once, twice, "normalize not idempotent for %q", input)
	}
}

func TestNormalize_UnparseableReturnsTrimmedInput(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  ://not a url at all  ", "://not a url at all"},
		{"not a url", "not a url"},
		{"https:///path-only", "https:///path-only"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Normalize(tt.input))
		// Still total and idempotent for garbage.
		assert.Equal(t, tt.expected, Normalize(tt.expected))
	}
}

func TestHostname(t *testing.T) {
	assert.Equal(t, "example.com", Hostname("HTTP://Example.com:80/Path"))
	assert.Equal(t, "www.example.com", Hostname("www.example.com/x"))
	assert.Equal(t, "", Hostname(""))
}

func TestPathSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical paths", "/a/b/c", "/a/b/c", 1.0},
		{"case-insensitive segment match", "/Blog/Post", "/blog/post", 1.0},
		{"both empty", "/", "", 1.0},
		{"one empty one not", "/", "/a", 0.0},
		{"partial match", "/a/b/c", "/a/b/x", 2.0 / 3.0},
		{"different lengths", "/a/b", "/a/b/c/d", 0.5},
		{"no match", "/x/y", "/a/b", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PathSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestFragments(t *testing.T) {
	frags := Fragments("https://www.example.com/blog/seo-guide?page=2", 3)

	assert.Contains(t, frags, "example.com")
	assert.Contains(t, frags, "blog")
	assert.Contains(t, frags, "seo-guide")
	// "page=2" survives the length filter, short pieces do not
	for _, f := range frags {
		assert.Greater(t, len(f), 3)
	}
}
