package badger

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	tmpDir := t.TempDir()

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store}
}

func TestContentStorageRoundTrip(t *testing.T) {
	db := newTestDB(t)
	storage := NewContentStorage(db, arbor.NewLogger())
	ctx := context.Background()

	record := &models.ContentRecord{
		URL:   "https://example.com/blog/seo-guide",
		Title: "SEO Guide",
		Text:  "guide text",
		Metrics: &models.ContentMetrics{
			WordCount:        250,
			ReadabilityScore: 62.5,
		},
	}
	require.NoError(t, storage.SaveContent(ctx, record))
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())

	loaded, err := storage.GetContent(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, record.URL, loaded.URL)
	require.NotNil(t, loaded.Metrics)
	assert.Equal(t, 250, loaded.Metrics.WordCount)

	missing, err := storage.GetContent(ctx, "content_missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentStorageURLQueries(t *testing.T) {
	db := newTestDB(t)
	storage := NewContentStorage(db, arbor.NewLogger())
	ctx := context.Background()

	urls := []string{
		"https://example.com/blog/first-post",
		"https://example.com/blog/second-post",
		"https://other.org/page",
	}
	for _, u := range urls {
		require.NoError(t, storage.SaveContent(ctx, &models.ContentRecord{URL: u}))
		// Distinct UpdatedAt timestamps for ordering checks.
		time.Sleep(5 * time.Millisecond)
	}

	// Exact match
	exact, err := storage.GetContentByURL(ctx, "https://example.com/blog/first-post")
	require.NoError(t, err)
	require.NotNil(t, exact)
	assert.Equal(t, urls[0], exact.URL)

	none, err := storage.GetContentByURL(ctx, "https://EXAMPLE.com/blog/first-post")
	require.NoError(t, err)
	assert.Nil(t, none)

	// Case-insensitive pattern match
	pattern := regexp.MustCompile(`(?i)^https://EXAMPLE\.com/blog/first-post$`)
	byPattern, err := storage.FindContentByURLRegex(ctx, pattern)
	require.NoError(t, err)
	require.NotNil(t, byPattern)
	assert.Equal(t, urls[0], byPattern.URL)

	// Substring match, newest first
	matches, err := storage.FindContentByURLSubstring(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, urls[1], matches[0].URL)
	assert.Equal(t, urls[0], matches[1].URL)

	count, err := storage.CountContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestContentStorageUpsertPreservesIdentity(t *testing.T) {
	db := newTestDB(t)
	storage := NewContentStorage(db, arbor.NewLogger())
	ctx := context.Background()

	record := &models.ContentRecord{URL: "https://example.com/page", Title: "v1"}
	require.NoError(t, storage.SaveContent(ctx, record))
	id := record.ID

	record.Title = "v2"
	require.NoError(t, storage.SaveContent(ctx, record))
	assert.Equal(t, id, record.ID)

	count, err := storage.CountContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCompetitorStorageScopedByProject(t *testing.T) {
	db := newTestDB(t)
	storage := NewCompetitorStorage(db, arbor.NewLogger())
	ctx := context.Background()

	records := []*models.CompetitorRecord{
		{ProjectID: "proj1", URL: "https://a.example.com/"},
		{ProjectID: "proj1", URL: "https://b.example.com/"},
		{ProjectID: "proj2", URL: "https://a.example.com/"},
	}
	for _, r := range records {
		require.NoError(t, storage.SaveCompetitor(ctx, r))
	}

	byURL, err := storage.GetCompetitorByURL(ctx, "proj1", "https://a.example.com/")
	require.NoError(t, err)
	require.NotNil(t, byURL)
	assert.Equal(t, records[0].ID, byURL.ID)

	// Same URL under a different project is a distinct record.
	otherProject, err := storage.GetCompetitorByURL(ctx, "proj2", "https://a.example.com/")
	require.NoError(t, err)
	require.NotNil(t, otherProject)
	assert.NotEqual(t, byURL.ID, otherProject.ID)

	list, err := storage.ListCompetitors(ctx, "proj1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	count, err := storage.CountCompetitors(ctx, "proj2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, storage.DeleteCompetitor(ctx, records[0].ID))
	count, err = storage.CountCompetitors(ctx, "proj1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Deleting an unknown ID is not an error.
	assert.NoError(t, storage.DeleteCompetitor(ctx, "competitor_missing"))
}

func TestCompetitorStorageTruncatesBody(t *testing.T) {
	db := newTestDB(t)
	storage := NewCompetitorStorage(db, arbor.NewLogger())
	ctx := context.Background()

	big := make([]byte, models.MaxStoredBodyBytes+1000)
	for i := range big {
		big[i] = 'x'
	}

	record := &models.CompetitorRecord{
		ProjectID: "proj1",
		URL:       "https://big.example.com/",
		Text:      string(big),
		HTML:      string(big),
	}
	require.NoError(t, storage.SaveCompetitor(ctx, record))

	loaded, err := storage.GetCompetitor(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Text, models.MaxStoredBodyBytes)
	assert.Len(t, loaded.HTML, models.MaxStoredBodyBytes)
}

func TestAnalysisStorageHistory(t *testing.T) {
	db := newTestDB(t)
	storage := NewAnalysisStorage(db, arbor.NewLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		record := &models.GapAnalysisRecord{
			ProjectID: "proj1",
			TargetURL: "https://example.com/page",
			Result:    *models.NewEmptyGapAnalysisResult(models.AnalysisSourceHeuristic),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, storage.SaveAnalysis(ctx, record))
	}

	analyses, err := storage.ListAnalyses(ctx, "proj1", 2)
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	assert.True(t, analyses[0].CreatedAt.After(analyses[1].CreatedAt))

	count, err := storage.CountAnalyses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	empty, err := storage.ListAnalyses(ctx, "proj_other", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSaveValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	contentStorage := NewContentStorage(db, arbor.NewLogger())
	assert.Error(t, contentStorage.SaveContent(ctx, &models.ContentRecord{}))

	competitorStorage := NewCompetitorStorage(db, arbor.NewLogger())
	assert.Error(t, competitorStorage.SaveCompetitor(ctx, &models.CompetitorRecord{URL: "https://x.com/"}))
	assert.Error(t, competitorStorage.SaveCompetitor(ctx, &models.CompetitorRecord{ProjectID: "p"}))

	analysisStorage := NewAnalysisStorage(db, arbor.NewLogger())
	assert.Error(t, analysisStorage.SaveAnalysis(ctx, &models.GapAnalysisRecord{}))
}
