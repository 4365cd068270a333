package interfaces

import (
	"context"

	"github.com/bobmcallan/vire-credit/internal/models"
)

// CreditService is the application-level contract shared by the HTTP API and
// the MCP tools. It composes the provider gateway, the analysis engine, the
// dispute orchestrator and storage.
type CreditService interface {
	// PullReport performs a direct pull through the primary provider and stores the outcome
	PullReport(ctx context.Context, req models.PullCreditRequest) (*models.PullResult, error)

	// CreateLinkToken starts a link flow with the fallback provider
	CreateLinkToken(ctx context.Context, userID string) (*models.LinkToken, error)

	// ExchangePublicToken completes a link flow and returns the access token
	ExchangePublicToken(ctx context.Context, publicToken string) (*models.LinkExchange, error)

	// PullLinkedReport pulls through the fallback provider with an access token from a link flow
	PullLinkedReport(ctx context.Context, accessToken string, req models.PullCreditRequest) (*models.PullResult, error)

	GetPull(ctx context.Context, id string) (*models.PullRecord, error)
	ListPulls(ctx context.Context, userID string) ([]models.PullRecord, error)
	GetReport(ctx context.Context, id string) (*models.CreditReport, error)
	ListReports(ctx context.Context, userID string) ([]models.CreditReport, error)

	// GetAnalysis returns the analysis of a stored report. When refresh is true
	// the report is re-analyzed even if an analysis is cached or stored.
	GetAnalysis(ctx context.Context, reportID string, refresh bool) (*models.CreditAnalysis, error)

	// AnalyzeReport analyzes a caller-supplied report without storing anything
	AnalyzeReport(report models.CreditReport) *models.CreditAnalysis

	SubmitDispute(ctx context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error)
	DisputeStatus(ctx context.Context, disputeID string) (*models.DisputeStatusView, error)
	ListDisputes(ctx context.Context, userID string) ([]models.DisputeRecord, error)

	EnableMonitoring(ctx context.Context, userID string) (*models.MonitoringHandle, error)
	ListMonitoring(ctx context.Context, userID string) ([]models.MonitoringHandle, error)
}
