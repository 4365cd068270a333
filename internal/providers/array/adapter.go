// Package array adapts the Array v2 credit API, a direct-pull aggregator,
// to the canonical credit report model.
package array

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
const Name = "array"

const (
	endpointReports    = "/v2/credit/reports"
	endpointDisputes   = "/v2/disputes"
	endpointMonitoring = "/v2/monitoring/enrollments"
)

// Adapter implements providers.DirectPullProvider over a Transport.
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

// PullCreditReport pulls one report per requested bureau.
func (a *Adapter) PullCreditReport(ctx context.Context, req models.PullCreditRequest) (*models.PullCreditResponse, error) {
	bureaus := req.RequestedBureaus()
	codes := make([]string, len(bureaus))
	for i, b := range bureaus {
		codes[i] = bureauCode(b)
	}

	in := wirePullRequest{
		UserID: req.UserID,
		Consumer: wireConsumerIdentity{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			SSN:         providers.DigitsOnly(req.TaxID),
			DateOfBirth: req.DateOfBirth,
			Address:     wireAddress(req.Address),
		},
		Bureaus: codes,
		Consent: wireConsent{
			Timestamp: req.ConsentTimestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
			IPAddress: req.IPAddress,
		},
	}

	var out wirePullResponse
	if err := a.transport.Do(ctx, http.MethodPost, endpointReports, in, &out); err != nil {
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
				Str("report_key", r.ReportKey).
				Msg("dropping report from unknown bureau")
			continue
		}
		resp.Reports = append(resp.Reports, transformReport(req.UserID, r))
	}
	for _, e := range out.Errors {
		bureau, ok := providers.ParseBureau(e.Bureau)
		if !ok {
			a.logger.Warn().
				Str("provider", Name).
				Str("bureau", e.Bureau).
				Str("error", e.Message).
				Msg("dropping error from unknown bureau")
			continue
		}
		resp.Errors = append(resp.Errors, models.BureauError{Bureau: bureau, Error: e.Message})
	}
	resp.Success = len(resp.Reports) > 0

	a.logger.Debug().
		Str("provider", Name).
		Int("reports", len(resp.Reports)).
		Int("bureau_errors", len(resp.Errors)).
		Msg("credit reports transformed")

	return resp, nil
}

// SubmitDispute opens a dispute on one tradeline.
func (a *Adapter) SubmitDispute(ctx context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error) {
	in := wireDisputeRequest{
		UserID:      req.UserID,
		ReportKey:   req.ReportID,
		TradelineID: req.AccountID,
		Bureau:      bureauCode(req.Bureau),
		ReasonCode:  strings.ToUpper(string(req.Reason)),
		Statement:   req.Explanation,
		Attachments: req.SupportingDocuments,
	}

	var out wireDisputeResponse
	if err := a.transport.Do(ctx, http.MethodPost, endpointDisputes, in, &out); err != nil {
		return nil, err
	}

	resp := &models.SubmitDisputeResponse{
		Success:            out.DisputeID != "",
		DisputeID:          out.DisputeID,
		ConfirmationNumber: out.ConfirmationNumber,
		Provider:           Name,
	}
	if d := providers.ParseDate(out.EstimatedCompletionDate); d != nil {
		resp.EstimatedResolutionDate = *d
	}
	return resp, nil
}

// GetDisputeStatus returns the provider's last reported status for a dispute.
func (a *Adapter) GetDisputeStatus(ctx context.Context, disputeID string) (*models.DisputeStatusView, error) {
	var out wireDisputeStatus
	err := a.transport.Do(ctx, http.MethodGet, endpointDisputes+"/"+disputeID, nil, &out)
	if err != nil {
		var terr *providers.TransportError
		if errors.As(err, &terr) && terr.IsNotFound() {
			return nil, &providers.NotFoundError{Resource: "dispute", ID: disputeID}
		}
		return nil, err
	}

	view := transformDisputeStatus(disputeID, out)
	return &view, nil
}

// EnableCreditMonitoring enrolls the user for provider-side monitoring alerts.
func (a *Adapter) EnableCreditMonitoring(ctx context.Context, userID string) (*models.MonitoringHandle, error) {
	var out wireEnrollment
	if err := a.transport.Do(ctx, http.MethodPost, endpointMonitoring, wireEnrollmentRequest{UserID: userID}, &out); err != nil {
		return nil, err
	}
	if out.EnrollmentID == "" {
		return nil, fmt.Errorf("%s: enrollment response missing id", Name)
	}

	return &models.MonitoringHandle{
		ID:        out.EnrollmentID,
		UserID:    userID,
		Provider:  Name,
		Status:    strings.ToLower(out.Status),
		EnabledAt: providers.ParseTime(out.EnrolledAt),
	}, nil
}
