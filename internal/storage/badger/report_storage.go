package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

// ErrReportExists is returned by SaveReport when a report id is already stored.
var ErrReportExists = errors.New("report already stored")

// ReportStorage implements interfaces.ReportStorage using BadgerDB.
type ReportStorage struct {
	db         *BadgerDB
	logger     *common.Logger
	bcryptCost int
	now        func() time.Time
}

// NewReportStorage creates report storage backed by BadgerDB.
func NewReportStorage(db *BadgerDB, logger *common.Logger) *ReportStorage {
	return &ReportStorage{
		db:         db,
		logger:     common.OrSilent(logger),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// SavePull stores the pull outcome and every report it returned.
func (s *ReportStorage) SavePull(ctx context.Context, req models.PullCreditRequest, provider, flow string, resp *models.PullCreditResponse) (*models.PullRecord, error) {
	record := &models.PullRecord{
		ID:       uuid.NewString(),
		UserID:   req.UserID,
		Provider: provider,
		Flow:     flow,
		Errors:   resp.Errors,
		Success:  resp.Success,
		PulledAt: s.now().UTC(),
	}

	if digits := providers.DigitsOnly(req.TaxID); digits != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(digits), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash tax id: %w", err)
		}
		record.TaxIDHash = string(hash)
	}

	for i := range resp.Reports {
		report := &resp.Reports[i]
		err := s.SaveReport(ctx, report)
		if errors.Is(err, ErrReportExists) {
			// Stored reports are immutable; a reused provider id is stored
			// under an id scoped to this pull.
			original := report.ID
			report.ID = original + "-" + record.ID[:8]
			s.logger.Warn().
				Str("report_id", original).
				Str("stored_as", report.ID).
				Str("pull_id", record.ID).
				Msg("provider reused a stored report id")
			err = s.SaveReport(ctx, report)
		}
		if err != nil {
			return nil, err
		}
		record.ReportIDs = append(record.ReportIDs, report.ID)
	}

	if err := s.db.Store().Insert(record.ID, record); err != nil {
		return nil, fmt.Errorf("failed to insert pull record %s: %w", record.ID, err)
	}

	s.logger.Debug().
		Str("pull_id", record.ID).
		Str("user_id", record.UserID).
		Int("reports", len(record.ReportIDs)).
		Msg("pull stored")
	return record, nil
}

// MatchesTaxID reports whether taxID hashes to the value stored on record.
func MatchesTaxID(record *models.PullRecord, taxID string) bool {
	if record.TaxIDHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(record.TaxIDHash), []byte(providers.DigitsOnly(taxID))) == nil
}

// GetPull retrieves a pull record by id.
func (s *ReportStorage) GetPull(_ context.Context, id string) (*models.PullRecord, error) {
	var record models.PullRecord
	if err := s.db.Store().Get(id, &record); err != nil {
		return nil, notFoundOr(err, "pull", id)
	}
	return &record, nil
}

// ListPulls returns a user's pull records, newest first.
func (s *ReportStorage) ListPulls(_ context.Context, userID string) ([]models.PullRecord, error) {
	var records []models.PullRecord
	if err := s.db.Store().Find(&records, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list pulls for %s: %w", userID, err)
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].PulledAt.After(records[j].PulledAt) })
	return records, nil
}

// SaveReport inserts a report. Stored reports are never replaced: an id that
// is already present fails with ErrReportExists.
func (s *ReportStorage) SaveReport(_ context.Context, report *models.CreditReport) error {
	if report.ID == "" {
		return &providers.ValidationError{Field: "id", Reason: "is required"}
	}
	if err := s.db.Store().Insert(report.ID, report); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return fmt.Errorf("%w: %s", ErrReportExists, report.ID)
		}
		return fmt.Errorf("failed to save report %s: %w", report.ID, err)
	}
	return nil
}

// GetReport retrieves a report by id.
func (s *ReportStorage) GetReport(_ context.Context, id string) (*models.CreditReport, error) {
	var report models.CreditReport
	if err := s.db.Store().Get(id, &report); err != nil {
		return nil, notFoundOr(err, "report", id)
	}
	return &report, nil
}

// ListReports returns a user's reports, newest pull first.
func (s *ReportStorage) ListReports(_ context.Context, userID string) ([]models.CreditReport, error) {
	var reports []models.CreditReport
	if err := s.db.Store().Find(&reports, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list reports for %s: %w", userID, err)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].PullDate.Equal(reports[j].PullDate) {
			return reports[i].ID < reports[j].ID
		}
		return reports[i].PullDate.After(reports[j].PullDate)
	})
	return reports, nil
}

// SaveAnalysis stores the latest analysis for its report, replacing any earlier one.
func (s *ReportStorage) SaveAnalysis(_ context.Context, analysis *models.CreditAnalysis) error {
	if err := s.db.Store().Upsert(analysis.ReportID, analysis); err != nil {
		return fmt.Errorf("failed to save analysis for %s: %w", analysis.ReportID, err)
	}
	return nil
}

// GetAnalysis retrieves the latest analysis for a report.
func (s *ReportStorage) GetAnalysis(_ context.Context, reportID string) (*models.CreditAnalysis, error) {
	var analysis models.CreditAnalysis
	if err := s.db.Store().Get(reportID, &analysis); err != nil {
		return nil, notFoundOr(err, "analysis", reportID)
	}
	return &analysis, nil
}

func notFoundOr(err error, resource, id string) error {
	if errors.Is(err, badgerhold.ErrNotFound) {
		return &providers.NotFoundError{Resource: resource, ID: id}
	}
	return fmt.Errorf("failed to get %s %s: %w", resource, id, err)
}
