package interfaces

import (
	"context"

	"github.com/bobmcallan/vire-credit/internal/models"
)

// StorageManager provides access to domain-specific storage interfaces.
// The core packages never import storage; only the app and handlers do.
type StorageManager interface {
	ReportStorage() ReportStorage
	DisputeStorage() DisputeStorage
	MonitoringStorage() MonitoringStorage
	Close() error
}

// ReportStorage persists pull outcomes, their reports and derived analyses.
type ReportStorage interface {
	SavePull(ctx context.Context, req models.PullCreditRequest, provider, flow string, resp *models.PullCreditResponse) (*models.PullRecord, error)
	GetPull(ctx context.Context, id string) (*models.PullRecord, error)
	ListPulls(ctx context.Context, userID string) ([]models.PullRecord, error)
	SaveReport(ctx context.Context, report *models.CreditReport) error
	GetReport(ctx context.Context, id string) (*models.CreditReport, error)
	ListReports(ctx context.Context, userID string) ([]models.CreditReport, error)
	SaveAnalysis(ctx context.Context, analysis *models.CreditAnalysis) error
	GetAnalysis(ctx context.Context, reportID string) (*models.CreditAnalysis, error)
}

// DisputeStorage keeps a local record of submitted disputes.
type DisputeStorage interface {
	SaveDispute(ctx context.Context, record *models.DisputeRecord) error
	GetDispute(ctx context.Context, disputeID string) (*models.DisputeRecord, error)
	ListDisputes(ctx context.Context, userID string) ([]models.DisputeRecord, error)
	UpdateStatus(ctx context.Context, disputeID string, status models.DisputeStatus) error
}

// MonitoringStorage keeps the monitoring handles returned by providers.
type MonitoringStorage interface {
	SaveHandle(ctx context.Context, handle *models.MonitoringHandle) error
	GetHandle(ctx context.Context, id string) (*models.MonitoringHandle, error)
	ListHandles(ctx context.Context, userID string) ([]models.MonitoringHandle, error)
}
