package providers

import (
	"context"
	"strings"

	"github.com/bobmcallan/vire-credit/internal/models"
)

// Provider is the capability every credit data adapter exposes.
type Provider interface {
	Name() string
	SubmitDispute(ctx context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error)
	GetDisputeStatus(ctx context.Context, disputeID string) (*models.DisputeStatusView, error)
	EnableCreditMonitoring(ctx context.Context, userID string) (*models.MonitoringHandle, error)
}

// DirectPullProvider pulls reports straight from consumer identity data.
type DirectPullProvider interface {
	Provider
	PullCreditReport(ctx context.Context, req models.PullCreditRequest) (*models.PullCreditResponse, error)
}

// LinkFlowProvider only releases credit data after a two-phase link flow:
// CreateLinkToken, then ExchangePublicToken for an access token.
type LinkFlowProvider interface {
	Provider
	CreateLinkToken(ctx context.Context, userID string) (*models.LinkToken, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*models.LinkExchange, error)
	PullLinkedCreditReport(ctx context.Context, accessToken string, req models.PullCreditRequest) (*models.PullCreditResponse, error)
}

var bureauAliases = map[string]models.Bureau{
	"experian":   models.BureauExperian,
	"exp":        models.BureauExperian,
	"xpn":        models.BureauExperian,
	"equifax":    models.BureauEquifax,
	"efx":        models.BureauEquifax,
	"eqf":        models.BureauEquifax,
	"transunion": models.BureauTransUnion,
	"tu":         models.BureauTransUnion,
	"tuc":        models.BureauTransUnion,
	"tru":        models.BureauTransUnion,
}

// ParseBureau maps a provider bureau code or name, e.g. "EFX", "Trans Union"
// or "trans_union", onto a Bureau. Case, spaces, dashes and underscores are
// ignored. ok is false for anything else.
func ParseBureau(s string) (b models.Bureau, ok bool) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(s))
	b, ok = bureauAliases[key]
	return b, ok
}

var factorImpacts = map[string]models.ImpactLevel{
	"HIGH":   models.ImpactHigh,
	"MEDIUM": models.ImpactMedium,
	"LOW":    models.ImpactLow,
}

// MapFactorImpact maps a provider impact code to an ImpactLevel, defaulting to low.
func MapFactorImpact(code string) models.ImpactLevel {
	if level, ok := factorImpacts[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return level
	}
	return models.ImpactLow
}

// DigitsOnly strips everything but ASCII digits, e.g. "123-45-6789" -> "123456789".
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
