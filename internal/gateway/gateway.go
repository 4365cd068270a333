// Package gateway presents one uniform interface over the configured credit
// data providers. The primary provider serves direct pulls; the fallback is a
// link-flow provider that callers must drive explicitly.
package gateway

import (
	"context"
	"time"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

// Gateway validates requests and dispatches them to a provider adapter.
// Adapter errors are logged and returned unchanged.
type Gateway struct {
	primary  providers.DirectPullProvider
	fallback providers.LinkFlowProvider
	logger   *common.Logger
}

// New creates a gateway. fallback may be nil when no link-flow provider is configured.
func New(primary providers.DirectPullProvider, fallback providers.LinkFlowProvider, logger *common.Logger) *Gateway {
	return &Gateway{
		primary:  primary,
		fallback: fallback,
		logger:   common.OrSilent(logger),
	}
}

// PrimaryName returns the name of the primary provider.
func (g *Gateway) PrimaryName() string {
	return g.primary.Name()
}

// FallbackName returns the name of the link-flow provider, or "" when none is configured.
func (g *Gateway) FallbackName() string {
	if g.fallback == nil {
		return ""
	}
	return g.fallback.Name()
}

// PullFullCreditReport pulls reports through the primary provider's direct flow.
func (g *Gateway) PullFullCreditReport(ctx context.Context, req models.PullCreditRequest) (*models.PullCreditResponse, error) {
	if err := ValidatePullRequest(req); err != nil {
		g.logger.Warn().Str("user_id", req.UserID).Str("error", err.Error()).Msg("credit pull rejected")
		return nil, err
	}

	start := time.Now()
	g.logger.Info().
		Str("provider", g.primary.Name()).
		Str("user_id", req.UserID).
		Int("bureaus", len(req.RequestedBureaus())).
		Msg("credit pull started")

	resp, err := g.primary.PullCreditReport(ctx, req)
	if err != nil {
		g.logger.Error().
			Str("provider", g.primary.Name()).
			Str("user_id", req.UserID).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("error", err.Error()).
			Msg("credit pull failed")
		return nil, err
	}

	g.logPullCompleted(g.primary.Name(), req.UserID, resp, start)
	return resp, nil
}

// CreateLinkToken starts a link flow on the fallback provider.
func (g *Gateway) CreateLinkToken(ctx context.Context, userID string) (*models.LinkToken, error) {
	fb, err := g.linkFlow("create link token")
	if err != nil {
		return nil, err
	}
	if err := requireField("user_id", userID); err != nil {
		return nil, err
	}

	token, err := fb.CreateLinkToken(ctx, userID)
	if err != nil {
		g.logger.Error().Str("provider", fb.Name()).Str("user_id", userID).Str("error", err.Error()).Msg("link token creation failed")
		return nil, err
	}
	g.logger.Info().Str("provider", fb.Name()).Str("user_id", userID).Msg("link token created")
	return token, nil
}

// ExchangePublicToken completes a link flow on the fallback provider.
func (g *Gateway) ExchangePublicToken(ctx context.Context, publicToken string) (*models.LinkExchange, error) {
	fb, err := g.linkFlow("exchange public token")
	if err != nil {
		return nil, err
	}
	if err := requireField("public_token", publicToken); err != nil {
		return nil, err
	}

	exchange, err := fb.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		g.logger.Error().Str("provider", fb.Name()).Str("error", err.Error()).Msg("public token exchange failed")
		return nil, err
	}
	g.logger.Info().Str("provider", fb.Name()).Str("item_id", exchange.ItemID).Msg("public token exchanged")
	return exchange, nil
}

// PullLinkedCreditReport pulls reports through the fallback provider using an
// access token obtained from ExchangePublicToken.
func (g *Gateway) PullLinkedCreditReport(ctx context.Context, accessToken string, req models.PullCreditRequest) (*models.PullCreditResponse, error) {
	fb, err := g.linkFlow("linked credit pull")
	if err != nil {
		return nil, err
	}
	if err := ValidatePullRequest(req); err != nil {
		g.logger.Warn().Str("user_id", req.UserID).Str("error", err.Error()).Msg("linked credit pull rejected")
		return nil, err
	}

	start := time.Now()
	g.logger.Info().Str("provider", fb.Name()).Str("user_id", req.UserID).Msg("linked credit pull started")

	resp, err := fb.PullLinkedCreditReport(ctx, accessToken, req)
	if err != nil {
		g.logger.Error().
			Str("provider", fb.Name()).
			Str("user_id", req.UserID).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("error", err.Error()).
			Msg("linked credit pull failed")
		return nil, err
	}

	g.logPullCompleted(fb.Name(), req.UserID, resp, start)
	return resp, nil
}

// SubmitDispute opens a dispute through the primary provider.
func (g *Gateway) SubmitDispute(ctx context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error) {
	if err := ValidateDisputeRequest(req); err != nil {
		g.logger.Warn().Str("user_id", req.UserID).Str("error", err.Error()).Msg("dispute submission rejected")
		return nil, err
	}

	g.logger.Info().
		Str("provider", g.primary.Name()).
		Str("user_id", req.UserID).
		Str("account_id", req.AccountID).
		Str("bureau", string(req.Bureau)).
		Str("reason", string(req.Reason)).
		Msg("dispute submission started")

	resp, err := g.primary.SubmitDispute(ctx, req)
	if err != nil {
		g.logger.Error().
			Str("provider", g.primary.Name()).
			Str("account_id", req.AccountID).
			Str("error", err.Error()).
			Msg("dispute submission failed")
		return nil, err
	}

	g.logger.Info().
		Str("provider", g.primary.Name()).
		Str("dispute_id", resp.DisputeID).
		Bool("success", resp.Success).
		Msg("dispute submission completed")
	return resp, nil
}

// GetDisputeStatus returns the primary provider's view of a dispute.
func (g *Gateway) GetDisputeStatus(ctx context.Context, disputeID string) (*models.DisputeStatusView, error) {
	if err := requireField("dispute_id", disputeID); err != nil {
		return nil, err
	}

	view, err := g.primary.GetDisputeStatus(ctx, disputeID)
	if err != nil {
		g.logger.Warn().Str("provider", g.primary.Name()).Str("dispute_id", disputeID).Str("error", err.Error()).Msg("dispute status lookup failed")
		return nil, err
	}
	g.logger.Debug().Str("dispute_id", disputeID).Str("status", string(view.Status)).Msg("dispute status fetched")
	return view, nil
}

// EnableCreditMonitoring registers monitoring interest with the primary provider.
// No polling happens here.
func (g *Gateway) EnableCreditMonitoring(ctx context.Context, userID string) (*models.MonitoringHandle, error) {
	if err := requireField("user_id", userID); err != nil {
		return nil, err
	}

	g.logger.Info().Str("provider", g.primary.Name()).Str("user_id", userID).Msg("credit monitoring enable started")
	handle, err := g.primary.EnableCreditMonitoring(ctx, userID)
	if err != nil {
		g.logger.Error().Str("provider", g.primary.Name()).Str("user_id", userID).Str("error", err.Error()).Msg("credit monitoring enable failed")
		return nil, err
	}
	g.logger.Info().Str("provider", g.primary.Name()).Str("handle_id", handle.ID).Str("status", handle.Status).Msg("credit monitoring enabled")
	return handle, nil
}

func (g *Gateway) linkFlow(operation string) (providers.LinkFlowProvider, error) {
	if g.fallback == nil {
		return nil, &providers.UnsupportedFlowError{
			Provider:  g.primary.Name(),
			Operation: operation,
			Reason:    "no link-flow provider configured",
		}
	}
	return g.fallback, nil
}

func (g *Gateway) logPullCompleted(provider, userID string, resp *models.PullCreditResponse, start time.Time) {
	ev := g.logger.Info()
	if len(resp.Errors) > 0 {
		ev = g.logger.Warn()
	}
	ev.Str("provider", provider).
		Str("user_id", userID).
		Bool("success", resp.Success).
		Int("reports", len(resp.Reports)).
		Int("bureau_errors", len(resp.Errors)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("credit pull completed")
}
