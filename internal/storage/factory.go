package storage

import (
	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/config"
	"github.com/bobmcallan/vire-credit/internal/interfaces"
	"github.com/bobmcallan/vire-credit/internal/storage/badger"
)

// NewStorageManager creates the storage manager for pulls, reports, analyses,
// disputes and monitoring handles.
func NewStorageManager(logger *common.Logger, cfg *config.Config) (interfaces.StorageManager, error) {
	manager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Badger.InMemory {
		common.OrSilent(logger).Warn().Msg("storage is in-memory, credit data will not survive a restart")
	}
	return manager, nil
}
