package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/contendo/internal/common"
)

func testConfig() common.ScraperConfig {
	return common.ScraperConfig{
		UserAgent:        "ContendoBot/test",
		RequestTimeout:   common.Duration(5 * time.Second),
		MaxBodySize:      1024 * 1024,
		MinContentLength: 100,
		RequestDelay:     0,
	}
}

func TestFetchExtractsTitleAndText(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><head>
			<title>Example Page</title>
			<style>body { color: red }</style>
		</head><body>
			<script>console.log("ignored")</script>
			<nav>Menu items</nav>
			<h1>Heading</h1>
			<p>First   paragraph
			with    broken whitespace.</p>
		</body></html>`))
	}))
	defer server.Close()

	svc := NewService(testConfig(), nil)
	defer svc.Close()

	result, err := svc.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "ContendoBot/test", gotUserAgent)
	assert.Equal(t, "Example Page", result.Title)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.Text, "First paragraph with broken whitespace.")
	assert.NotContains(t, result.Text, "console.log")
	assert.NotContains(t, result.Text, "color: red")
	assert.NotContains(t, result.Text, "Menu items")
	assert.Contains(t, result.HTML, "<title>Example Page</title>")
}

func TestFetchTitleFallsBackToH1(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Only Heading</h1><p>Body text here</p></body></html>`))
	}))
	defer server.Close()

	svc := NewService(testConfig(), nil)
	defer svc.Close()

	result, err := svc.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Only Heading", result.Title)
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewService(testConfig(), nil)
	defer svc.Close()

	result, err := svc.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestFetchRespectsBodySizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>"))
		for i := 0; i < 10000; i++ {
			w.Write([]byte("padding content "))
		}
		w.Write([]byte("</body></html>"))
	}))
	defer server.Close()

	config := testConfig()
	config.MaxBodySize = 512

	svc := NewService(config, nil)
	defer svc.Close()

	result, err := svc.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.HTML), 512)
}

func TestFetchContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	svc := NewService(testConfig(), nil)
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.Fetch(ctx, server.URL)
	assert.Error(t, err)
}

func TestFetchInvalidURL(t *testing.T) {
	svc := NewService(testConfig(), nil)
	defer svc.Close()

	_, err := svc.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
	assert.Error(t, err)
}
