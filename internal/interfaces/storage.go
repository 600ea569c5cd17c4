package interfaces

import (
	"context"
	"regexp"

	"github.com/ternarybob/contendo/internal/models"
)

// ListOptions controls pagination for list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// ContentStorage persists content records and exposes the URL query surface
// the resolver cascade needs: exact equality, case-insensitive pattern match,
// and substring containment ordered newest first.
//
// Lookup methods return (nil, nil) when no record matches; errors are
// reserved for storage failures.
type ContentStorage interface {
	SaveContent(ctx context.Context, record *models.ContentRecord) error
	GetContent(ctx context.Context, id string) (*models.ContentRecord, error)

	// GetContentByURL finds a record whose URL equals the given string exactly.
	GetContentByURL(ctx context.Context, url string) (*models.ContentRecord, error)

	// FindContentByURLRegex finds the first record whose URL matches pattern.
	FindContentByURLRegex(ctx context.Context, pattern *regexp.Regexp) (*models.ContentRecord, error)

	// FindContentByURLSubstring finds records whose URL contains substr,
	// ordered most recently updated first.
	FindContentByURLSubstring(ctx context.Context, substr string) ([]*models.ContentRecord, error)

	ListContent(ctx context.Context, opts *ListOptions) ([]*models.ContentRecord, error)
	CountContent(ctx context.Context) (int, error)
}

// CompetitorStorage persists competitor records scoped by project.
// GetCompetitorByURL returns (nil, nil) when no record matches.
type CompetitorStorage interface {
	SaveCompetitor(ctx context.Context, record *models.CompetitorRecord) error
	GetCompetitor(ctx context.Context, id string) (*models.CompetitorRecord, error)
	GetCompetitorByURL(ctx context.Context, projectID, url string) (*models.CompetitorRecord, error)
	ListCompetitors(ctx context.Context, projectID string) ([]*models.CompetitorRecord, error)
	DeleteCompetitor(ctx context.Context, id string) error
	CountCompetitors(ctx context.Context, projectID string) (int, error)
}

// AnalysisStorage persists gap analysis snapshots for the status surface.
type AnalysisStorage interface {
	SaveAnalysis(ctx context.Context, record *models.GapAnalysisRecord) error
	ListAnalyses(ctx context.Context, projectID string, limit int) ([]*models.GapAnalysisRecord, error)
	CountAnalyses(ctx context.Context) (int, error)
}

// StorageManager aggregates the per-entity storages over one database.
type StorageManager interface {
	ContentStorage() ContentStorage
	CompetitorStorage() CompetitorStorage
	AnalysisStorage() AnalysisStorage
	Close() error
}
