package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/models"
)

// DisputeStorage implements interfaces.DisputeStorage using BadgerDB.
type DisputeStorage struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewDisputeStorage creates dispute storage backed by BadgerDB.
func NewDisputeStorage(db *BadgerDB, logger *common.Logger) *DisputeStorage {
	return &DisputeStorage{
		db:     db,
		logger: common.OrSilent(logger),
	}
}

// SaveDispute upserts a dispute record.
func (s *DisputeStorage) SaveDispute(_ context.Context, record *models.DisputeRecord) error {
	if err := s.db.Store().Upsert(record.DisputeID, record); err != nil {
		return fmt.Errorf("failed to save dispute %s: %w", record.DisputeID, err)
	}
	return nil
}

// GetDispute retrieves a dispute record.
func (s *DisputeStorage) GetDispute(_ context.Context, disputeID string) (*models.DisputeRecord, error) {
	var record models.DisputeRecord
	if err := s.db.Store().Get(disputeID, &record); err != nil {
		return nil, notFoundOr(err, "dispute", disputeID)
	}
	return &record, nil
}

// ListDisputes returns a user's disputes, newest first.
func (s *DisputeStorage) ListDisputes(_ context.Context, userID string) ([]models.DisputeRecord, error) {
	var records []models.DisputeRecord
	if err := s.db.Store().Find(&records, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list disputes for %s: %w", userID, err)
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].SubmittedAt.After(records[j].SubmittedAt) })
	return records, nil
}

// UpdateStatus records the last status the provider reported. Unknown disputes are ignored.
func (s *DisputeStorage) UpdateStatus(ctx context.Context, disputeID string, status models.DisputeStatus) error {
	record, err := s.GetDispute(ctx, disputeID)
	if err != nil {
		if isNotFound(err) {
			s.logger.Debug().Str("dispute_id", disputeID).Msg("status for untracked dispute, skipping")
			return nil
		}
		return err
	}
	if record.LastStatus == status {
		return nil
	}
	record.LastStatus = status
	return s.SaveDispute(ctx, record)
}
