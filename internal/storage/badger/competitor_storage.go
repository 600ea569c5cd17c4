package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// CompetitorStorage implements the CompetitorStorage interface for Badger
type CompetitorStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCompetitorStorage creates a new CompetitorStorage instance
func NewCompetitorStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CompetitorStorage {
	return &CompetitorStorage{
		db:     db,
		logger: logger,
	}
}

func (s *CompetitorStorage) SaveCompetitor(ctx context.Context, record *models.CompetitorRecord) error {
	if record.ProjectID == "" {
		return fmt.Errorf("competitor project ID is required")
	}
	if record.URL == "" {
		return fmt.Errorf("competitor URL is required")
	}
	if record.ID == "" {
		record.ID = common.NewCompetitorID()
	}

	record.TruncateBody()

	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save competitor record: %w", err)
	}
	return nil
}

func (s *CompetitorStorage) GetCompetitor(ctx context.Context, id string) (*models.CompetitorRecord, error) {
	var record models.CompetitorRecord
	if err := s.db.Store().Get(id, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get competitor record: %w", err)
	}
	return &record, nil
}

func (s *CompetitorStorage) GetCompetitorByURL(ctx context.Context, projectID, url string) (*models.CompetitorRecord, error) {
	var records []models.CompetitorRecord
	err := s.db.Store().Find(&records, badgerhold.Where("ProjectID").Eq(projectID).Index("ProjectID").And("URL").Eq(url).Limit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to query competitor by URL: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (s *CompetitorStorage) ListCompetitors(ctx context.Context, projectID string) ([]*models.CompetitorRecord, error) {
	var records []models.CompetitorRecord
	err := s.db.Store().Find(&records, badgerhold.Where("ProjectID").Eq(projectID).Index("ProjectID"))
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}

	result := make([]*models.CompetitorRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

func (s *CompetitorStorage) DeleteCompetitor(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.CompetitorRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete competitor record: %w", err)
	}
	return nil
}

func (s *CompetitorStorage) CountCompetitors(ctx context.Context, projectID string) (int, error) {
	count, err := s.db.Store().Count(&models.CompetitorRecord{}, badgerhold.Where("ProjectID").Eq(projectID))
	if err != nil {
		return 0, fmt.Errorf("failed to count competitors: %w", err)
	}
	return int(count), nil
}
