package badger

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/interfaces"
	"github.com/ternarybob/contendo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ContentStorage implements the ContentStorage interface for Badger
type ContentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewContentStorage creates a new ContentStorage instance
func NewContentStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ContentStorage {
	return &ContentStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ContentStorage) SaveContent(ctx context.Context, record *models.ContentRecord) error {
	if record.URL == "" {
		return fmt.Errorf("content URL is required")
	}
	if record.ID == "" {
		record.ID = common.NewContentID()
	}

	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save content record: %w", err)
	}
	return nil
}

func (s *ContentStorage) GetContent(ctx context.Context, id string) (*models.ContentRecord, error) {
	var record models.ContentRecord
	if err := s.db.Store().Get(id, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get content record: %w", err)
	}
	return &record, nil
}

func (s *ContentStorage) GetContentByURL(ctx context.Context, url string) (*models.ContentRecord, error) {
	var records []models.ContentRecord
	err := s.db.Store().Find(&records, badgerhold.Where("URL").Eq(url).Index("URL").Limit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to query content by URL: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (s *ContentStorage) FindContentByURLRegex(ctx context.Context, pattern *regexp.Regexp) (*models.ContentRecord, error) {
	var records []models.ContentRecord
	err := s.db.Store().Find(&records, badgerhold.Where("URL").RegExp(pattern).Limit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to query content by URL pattern: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (s *ContentStorage) FindContentByURLSubstring(ctx context.Context, substr string) ([]*models.ContentRecord, error) {
	var records []models.ContentRecord
	err := s.db.Store().Find(&records, badgerhold.Where("URL").MatchFunc(func(ra *badgerhold.RecordAccess) (bool, error) {
		url, ok := ra.Field().(string)
		if !ok {
			return false, nil
		}
		return strings.Contains(url, substr), nil
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to query content by URL substring: %w", err)
	}

	// Newest first
	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})

	result := make([]*models.ContentRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

func (s *ContentStorage) ListContent(ctx context.Context, opts *interfaces.ListOptions) ([]*models.ContentRecord, error) {
	query := badgerhold.Where("ID").Ne("") // Select all

	if opts != nil {
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			query = query.Skip(opts.Offset)
		}
	}

	var records []models.ContentRecord
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list content records: %w", err)
	}

	result := make([]*models.ContentRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

func (s *ContentStorage) CountContent(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.ContentRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count content records: %w", err)
	}
	return int(count), nil
}
