package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

// MonitoringStorage implements interfaces.MonitoringStorage using BadgerDB.
type MonitoringStorage struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewMonitoringStorage creates monitoring handle storage backed by BadgerDB.
func NewMonitoringStorage(db *BadgerDB, logger *common.Logger) *MonitoringStorage {
	return &MonitoringStorage{
		db:     db,
		logger: common.OrSilent(logger),
	}
}

// SaveHandle upserts a monitoring handle.
func (s *MonitoringStorage) SaveHandle(_ context.Context, handle *models.MonitoringHandle) error {
	if err := s.db.Store().Upsert(handle.ID, handle); err != nil {
		return fmt.Errorf("failed to save monitoring handle %s: %w", handle.ID, err)
	}
	return nil
}

// GetHandle retrieves a monitoring handle.
func (s *MonitoringStorage) GetHandle(_ context.Context, id string) (*models.MonitoringHandle, error) {
	var handle models.MonitoringHandle
	if err := s.db.Store().Get(id, &handle); err != nil {
		return nil, notFoundOr(err, "monitoring handle", id)
	}
	return &handle, nil
}

// ListHandles returns every monitoring handle registered for a user.
func (s *MonitoringStorage) ListHandles(_ context.Context, userID string) ([]models.MonitoringHandle, error) {
	var handles []models.MonitoringHandle
	if err := s.db.Store().Find(&handles, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list monitoring handles for %s: %w", userID, err)
	}
	return handles, nil
}

func isNotFound(err error) bool {
	var nerr *providers.NotFoundError
	return errors.As(err, &nerr)
}
