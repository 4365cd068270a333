package badger

import (
	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/config"
	"github.com/bobmcallan/vire-credit/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger.
type Manager struct {
	db         *BadgerDB
	reports    *ReportStorage
	disputes   *DisputeStorage
	monitoring *MonitoringStorage
	logger     *common.Logger
}

// NewManager creates a new Badger storage manager.
func NewManager(logger *common.Logger, cfg *config.BadgerConfig) (*Manager, error) {
	logger = common.OrSilent(logger)

	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:         db,
		reports:    NewReportStorage(db, logger),
		disputes:   NewDisputeStorage(db, logger),
		monitoring: NewMonitoringStorage(db, logger),
		logger:     logger,
	}

	logger.Debug().Msg("badger storage manager initialized")

	return manager, nil
}

// ReportStorage returns pull, report and analysis storage.
func (m *Manager) ReportStorage() interfaces.ReportStorage {
	return m.reports
}

// DisputeStorage returns dispute record storage.
func (m *Manager) DisputeStorage() interfaces.DisputeStorage {
	return m.disputes
}

// MonitoringStorage returns monitoring handle storage.
func (m *Manager) MonitoringStorage() interfaces.MonitoringStorage {
	return m.monitoring
}

// Close closes the database connection.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
