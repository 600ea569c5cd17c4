package badger

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/contendo/internal/common"
	"github.com/ternarybob/contendo/internal/interfaces"
)

// Manager wires the per-entity storages over a single BadgerDB connection
type Manager struct {
	db          *BadgerDB
	logger      arbor.ILogger
	content     interfaces.ContentStorage
	competitors interfaces.CompetitorStorage
	analyses    interfaces.AnalysisStorage
}

// NewManager opens the database and constructs the storage implementations
func NewManager(config *common.BadgerConfig, logger arbor.ILogger) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize badger storage: %w", err)
	}

	return &Manager{
		db:          db,
		logger:      logger,
		content:     NewContentStorage(db, logger),
		competitors: NewCompetitorStorage(db, logger),
		analyses:    NewAnalysisStorage(db, logger),
	}, nil
}

// NewManagerWithDB constructs a manager over an existing connection (tests)
func NewManagerWithDB(db *BadgerDB, logger arbor.ILogger) interfaces.StorageManager {
	return &Manager{
		db:          db,
		logger:      logger,
		content:     NewContentStorage(db, logger),
		competitors: NewCompetitorStorage(db, logger),
		analyses:    NewAnalysisStorage(db, logger),
	}
}

func (m *Manager) ContentStorage() interfaces.ContentStorage {
	return m.content
}

func (m *Manager) CompetitorStorage() interfaces.CompetitorStorage {
	return m.competitors
}

func (m *Manager) AnalysisStorage() interfaces.AnalysisStorage {
	return m.analyses
}

func (m *Manager) Close() error {
	return m.db.Close()
}
