// Package plaid adapts a link-flow credit aggregator to the canonical credit
// report model. Credit data is only released after the consumer completes a
// link session and the resulting public token is exchanged for an access token.
package plaid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

// Name identifies this provider in logs, errors and responses.
const Name = "plaid"

const (
	endpointLinkToken  = "/link/token/create"
	endpointExchange   = "/item/public_token/exchange"
	endpointReport     = "/credit/report/get"
	endpointDispute    = "/credit/dispute/create"
	endpointDisputeGet = "/credit/dispute/get"
	endpointMonitoring = "/credit/monitoring/enable"
)

// Adapter implements providers.LinkFlowProvider over a Transport.
type Adapter struct {
	transport providers.Transport
	logger    *common.Logger
}

// New creates an adapter. The transport decides sandbox, production or mock.
func New(transport providers.Transport, logger *common.Logger) *Adapter {
	return &Adapter{
		transport: transport,
		logger:    common.OrSilent(logger),
	}
}

// Name returns the provider name.
func (a *Adapter) Name() string {
	return Name
}

// PullCreditReport always fails: this provider has no direct pull. Callers must
// run CreateLinkToken / ExchangePublicToken and use PullLinkedCreditReport.
func (a *Adapter) PullCreditReport(_ context.Context, _ models.PullCreditRequest) (*models.PullCreditResponse, error) {
	return nil, &providers.UnsupportedFlowError{
		Provider:  Name,
		Operation: "direct credit pull",
		Reason:    "requires link flow: create a link token and exchange the public token first",
	}
}

// CreateLinkToken starts a link session for the user.
func (a *Adapter) CreateLinkToken(ctx context.Context, userID string) (*models.LinkToken, error) {
	in := wireLinkTokenRequest{ClientUserID: userID, Products: []string{"credit_report"}}

	var out wireLinkTokenResponse
	if err := a.transport.Do(ctx, http.MethodPost, endpointLinkToken, in, &out); err != nil {
		return nil, err
	}
	if out.LinkToken == "" {
		return nil, fmt.Errorf("%s: link token response missing token", Name)
	}
	return &models.LinkToken{
		Token:      out.LinkToken,
		Expiration: providers.ParseTime(out.Expiration),
	}, nil
}

// ExchangePublicToken trades the public token from a completed link session for an access token.
func (a *Adapter) ExchangePublicToken(ctx context.Context, publicToken string) (*models.LinkExchange, error) {
	var out wireExchangeResponse
	if err := a.transport.Do(ctx, http.MethodPost, endpointExchange, wireExchangeRequest{PublicToken: publicToken}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("%s: exchange response missing access token", Name)
	}
	return &models.LinkExchange{AccessToken: out.AccessToken, ItemID: out.ItemID}, nil
}

// PullLinkedCreditReport pulls reports with an access token from ExchangePublicToken.
func (a *Adapter) PullLinkedCreditReport(ctx context.Context, accessToken string, req models.PullCreditRequest) (*models.PullCreditResponse, error) {
	if strings.TrimSpace(accessToken) == "" {
		return a.PullCreditReport(ctx, req)
	}

	bureaus := req.RequestedBureaus()
	in := wireReportRequest{AccessToken: accessToken, Bureaus: make([]string, len(bureaus))}
	for i, b := range bureaus {
		in.Bureaus[i] = string(b)
	}

	var out wireReportResponse
	if err := a.transport.Do(ctx, http.MethodPost, endpointReport, in, &out); err != nil {
		return nil, err
	}

	resp := &models.PullCreditResponse{
		Reports: make([]models.CreditReport, 0, len(out.Reports)),
	}
	for _, r := range out.Reports {
		if _, ok := providers.ParseBureau(r.Bureau); !ok {
			a.logger.Warn().
				Str("provider", Name).
				Str("bureau", r.Bureau).
				Str("report_id", r.ReportID).
				Msg("dropping report from unknown bureau")
			continue
		}
		resp.Reports = append(resp.Reports, transformReport(req.UserID, r))
	}
	for _, e := range out.BureauErrors {
		bureau, ok := providers.ParseBureau(e.Bureau)
		if !ok {
			a.logger.Warn().
				Str("provider", Name).
				Str("bureau", e.Bureau).
				Str("error", e.ErrorMessage).
				Msg("dropping error from unknown bureau")
			continue
		}
		resp.Errors = append(resp.Errors, models.BureauError{Bureau: bureau, Error: e.ErrorMessage})
	}
	resp.Success = len(resp.Reports) > 0

	a.logger.Debug().
		Str("provider", Name).
		Int("reports", len(resp.Reports)).
		Int("bureau_errors", len(resp.Errors)).
		Msg("linked credit reports transformed")

	return resp, nil
}

// SubmitDispute opens a dispute on one account.
func (a *Adapter) SubmitDispute(ctx context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error) {
	in := wireDisputeCreateRequest{
		ClientUserID: req.UserID,
		ReportID:     req.ReportID,
		AccountID:    req.AccountID,
		Bureau:       string(req.Bureau),
		Reason:       string(req.Reason),
		Explanation:  req.Explanation,
		Documents:    req.SupportingDocuments,
	}

	var out wireDisputeCreateResponse
	if err := a.transport.Do(ctx, http.MethodPost, endpointDispute, in, &out); err != nil {
		return nil, err
	}

	resp := &models.SubmitDisputeResponse{
		Success:            out.DisputeID != "",
		DisputeID:          out.DisputeID,
		ConfirmationNumber: out.ConfirmationCode,
		Provider:           Name,
	}
	if d := providers.ParseDate(out.ExpectedResolutionDate); d != nil {
		resp.EstimatedResolutionDate = *d
	}
	return resp, nil
}

// GetDisputeStatus returns the provider's last reported status for a dispute.
func (a *Adapter) GetDisputeStatus(ctx context.Context, disputeID string) (*models.DisputeStatusView, error) {
	var out wireDisputeGetResponse
	err := a.transport.Do(ctx, http.MethodPost, endpointDisputeGet, wireDisputeGetRequest{DisputeID: disputeID}, &out)
	if err != nil {
		var terr *providers.TransportError
		if errors.As(err, &terr) && terr.IsNotFound() {
			return nil, &providers.NotFoundError{Resource: "dispute", ID: disputeID}
		}
		return nil, err
	}

	view := transformDispute(disputeID, out.Dispute)
	return &view, nil
}

// EnableCreditMonitoring subscribes the user to provider-side monitoring alerts.
func (a *Adapter) EnableCreditMonitoring(ctx context.Context, userID string) (*models.MonitoringHandle, error) {
	var out wireMonitoringResponse
	if err := a.transport.Do(ctx, http.MethodPost, endpointMonitoring, wireMonitoringRequest{ClientUserID: userID}, &out); err != nil {
		return nil, err
	}
	if out.SubscriptionID == "" {
		return nil, fmt.Errorf("%s: monitoring response missing subscription id", Name)
	}
	return &models.MonitoringHandle{
		ID:        out.SubscriptionID,
		UserID:    userID,
		Provider:  Name,
		Status:    code(out.Status),
		EnabledAt: providers.ParseTime(out.CreatedAt),
	}, nil
}
