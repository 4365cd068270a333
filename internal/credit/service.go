// Package credit composes the provider gateway, analysis engine, dispute
// orchestrator and storage into the operations exposed over HTTP and MCP.
package credit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bobmcallan/vire-credit/internal/cache"
	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/interfaces"
	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

// Gateway is the provider gateway surface the service calls.
type Gateway interface {
	PrimaryName() string
	FallbackName() string
	PullFullCreditReport(ctx context.Context, req models.PullCreditRequest) (*models.PullCreditResponse, error)
	CreateLinkToken(ctx context.Context, userID string) (*models.LinkToken, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*models.LinkExchange, error)
	PullLinkedCreditReport(ctx context.Context, accessToken string, req models.PullCreditRequest) (*models.PullCreditResponse, error)
	EnableCreditMonitoring(ctx context.Context, userID string) (*models.MonitoringHandle, error)
}

// Disputes submits and tracks disputes.
type Disputes interface {
	Submit(ctx context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error)
	Status(ctx context.Context, disputeID string) (*models.DisputeStatusView, error)
}

// Analyzer turns a report into an analysis.
type Analyzer interface {
	Analyze(report models.CreditReport) *models.CreditAnalysis
}

// Service implements interfaces.CreditService.
type Service struct {
	gateway  Gateway
	disputes Disputes
	engine   Analyzer
	storage  interfaces.StorageManager
	cache    *cache.AnalysisCache
	logger   *common.Logger
	now      func() time.Time
}

var _ interfaces.CreditService = (*Service)(nil)

// NewService creates a credit service. A nil cache disables analysis caching.
func NewService(
	gateway Gateway,
	disputes Disputes,
	engine Analyzer,
	storage interfaces.StorageManager,
	analysisCache *cache.AnalysisCache,
	logger *common.Logger,
) *Service {
	return &Service{
		gateway:  gateway,
		disputes: disputes,
		engine:   engine,
		storage:  storage,
		cache:    analysisCache,
		logger:   common.OrSilent(logger),
		now:      time.Now,
	}
}

// PullReport pulls through the primary provider, stores the pull and its
// reports, and stores a fresh analysis of every report. Failing to store an
// analysis is logged and does not fail the pull.
func (s *Service) PullReport(ctx context.Context, req models.PullCreditRequest) (*models.PullResult, error) {
	resp, err := s.gateway.PullFullCreditReport(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, req, s.gateway.PrimaryName(), models.FlowDirect, resp)
}

// CreateLinkToken starts a link flow.
func (s *Service) CreateLinkToken(ctx context.Context, userID string) (*models.LinkToken, error) {
	return s.gateway.CreateLinkToken(ctx, userID)
}

// ExchangePublicToken completes a link flow.
func (s *Service) ExchangePublicToken(ctx context.Context, publicToken string) (*models.LinkExchange, error) {
	return s.gateway.ExchangePublicToken(ctx, publicToken)
}

// PullLinkedReport pulls through the fallback provider and stores the outcome.
func (s *Service) PullLinkedReport(ctx context.Context, accessToken string, req models.PullCreditRequest) (*models.PullResult, error) {
	resp, err := s.gateway.PullLinkedCreditReport(ctx, accessToken, req)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, req, s.gateway.FallbackName(), models.FlowLink, resp)
}

func (s *Service) record(ctx context.Context, req models.PullCreditRequest, provider, flow string, resp *models.PullCreditResponse) (*models.PullResult, error) {
	rec, err := s.storage.ReportStorage().SavePull(ctx, req, provider, flow, resp)
	if err != nil {
		return nil, fmt.Errorf("failed to store pull: %w", err)
	}

	// The pull is already stored; a failed analysis write is recomputed on read.
	for i := range resp.Reports {
		if _, err := s.analyze(ctx, &resp.Reports[i]); err != nil {
			s.logger.Warn().
				Str("pull_id", rec.ID).
				Str("report_id", resp.Reports[i].ID).
				Str("error", err.Error()).
				Msg("failed to store analysis for pulled report")
		}
	}

	s.logger.Info().
		Str("pull_id", rec.ID).
		Str("provider", provider).
		Str("flow", flow).
		Int("reports", len(rec.ReportIDs)).
		Msg("pull recorded")

	return &models.PullResult{
		PullID:             rec.ID,
		Provider:           provider,
		Flow:               flow,
		PullCreditResponse: *resp,
	}, nil
}

// GetPull returns a stored pull record.
func (s *Service) GetPull(ctx context.Context, id string) (*models.PullRecord, error) {
	if err := requireID("pull_id", id); err != nil {
		return nil, err
	}
	return s.storage.ReportStorage().GetPull(ctx, id)
}

// ListPulls returns a user's pull records, newest first.
func (s *Service) ListPulls(ctx context.Context, userID string) ([]models.PullRecord, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	return s.storage.ReportStorage().ListPulls(ctx, userID)
}

// GetReport returns a stored report.
func (s *Service) GetReport(ctx context.Context, id string) (*models.CreditReport, error) {
	if err := requireID("report_id", id); err != nil {
		return nil, err
	}
	return s.storage.ReportStorage().GetReport(ctx, id)
}

// ListReports returns a user's stored reports.
func (s *Service) ListReports(ctx context.Context, userID string) ([]models.CreditReport, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	return s.storage.ReportStorage().ListReports(ctx, userID)
}

// GetAnalysis resolves an analysis from the cache, then storage, and finally
// by analyzing the stored report.
func (s *Service) GetAnalysis(ctx context.Context, reportID string, refresh bool) (*models.CreditAnalysis, error) {
	if err := requireID("report_id", reportID); err != nil {
		return nil, err
	}

	if !refresh {
		if s.cache != nil {
			if a, ok := s.cache.Get(reportID); ok {
				return a, nil
			}
		}
		a, err := s.storage.ReportStorage().GetAnalysis(ctx, reportID)
		if err == nil {
			s.remember(a)
			return a, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	report, err := s.storage.ReportStorage().GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	a, err := s.analyze(ctx, report)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// AnalyzeReport runs the engine over a report supplied by the caller.
func (s *Service) AnalyzeReport(report models.CreditReport) *models.CreditAnalysis {
	return s.engine.Analyze(report)
}

// analyze caches and stores a fresh analysis. The analysis is returned even
// when storing it fails.
func (s *Service) analyze(ctx context.Context, report *models.CreditReport) (*models.CreditAnalysis, error) {
	a := s.engine.Analyze(*report)
	s.remember(a)
	if err := s.storage.ReportStorage().SaveAnalysis(ctx, a); err != nil {
		return a, fmt.Errorf("failed to store analysis for %s: %w", report.ID, err)
	}

	s.logger.Debug().
		Str("report_id", a.ReportID).
		Int("composite", a.ScoreBreakdown.Composite()).
		Str("health", string(a.OverallHealth)).
		Int("issues", len(a.Issues)).
		Int("opportunities", len(a.DisputeOpportunities)).
		Msg("report analyzed")
	return a, nil
}

func (s *Service) remember(a *models.CreditAnalysis) {
	if s.cache != nil {
		s.cache.Set(a)
	}
}

// SubmitDispute files a dispute and keeps a local record of it.
func (s *Service) SubmitDispute(ctx context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error) {
	resp, err := s.disputes.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	rec := &models.DisputeRecord{
		DisputeID:               resp.DisputeID,
		UserID:                  req.UserID,
		ReportID:                req.ReportID,
		AccountID:               req.AccountID,
		Bureau:                  req.Bureau,
		Reason:                  req.Reason,
		ConfirmationNumber:      resp.ConfirmationNumber,
		EstimatedResolutionDate: resp.EstimatedResolutionDate,
		Provider:                resp.Provider,
		LastStatus:              models.DisputePending,
		SubmittedAt:             s.now().UTC(),
	}
	if err := s.storage.DisputeStorage().SaveDispute(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store dispute %s: %w", resp.DisputeID, err)
	}
	return resp, nil
}

// DisputeStatus returns the provider's view of a dispute and records it locally.
func (s *Service) DisputeStatus(ctx context.Context, disputeID string) (*models.DisputeStatusView, error) {
	view, err := s.disputes.Status(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if err := s.storage.DisputeStorage().UpdateStatus(ctx, view.DisputeID, view.Status); err != nil {
		s.logger.Warn().Str("dispute_id", view.DisputeID).Str("error", err.Error()).Msg("failed to record dispute status")
	}
	return view, nil
}

// ListDisputes returns a user's stored disputes.
func (s *Service) ListDisputes(ctx context.Context, userID string) ([]models.DisputeRecord, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	return s.storage.DisputeStorage().ListDisputes(ctx, userID)
}

// EnableMonitoring registers monitoring with the primary provider and stores the handle.
func (s *Service) EnableMonitoring(ctx context.Context, userID string) (*models.MonitoringHandle, error) {
	handle, err := s.gateway.EnableCreditMonitoring(ctx, userID)
	if err != nil {
		return nil, err
	}
	if handle.UserID == "" {
		handle.UserID = userID
	}
	if err := s.storage.MonitoringStorage().SaveHandle(ctx, handle); err != nil {
		return nil, fmt.Errorf("failed to store monitoring handle %s: %w", handle.ID, err)
	}
	return handle, nil
}

// ListMonitoring returns a user's monitoring handles.
func (s *Service) ListMonitoring(ctx context.Context, userID string) ([]models.MonitoringHandle, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	return s.storage.MonitoringStorage().ListHandles(ctx, userID)
}

func requireID(field, value string) error {
	if value == "" {
		return &providers.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func isNotFound(err error) bool {
	var nf *providers.NotFoundError
	return errors.As(err, &nf)
}
