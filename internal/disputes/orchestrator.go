// Package disputes submits disputes through the provider gateway and shapes
// the result into a stable contract regardless of which provider served it.
package disputes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/models"
)

// DefaultResolutionDays is the bureau investigation window used when a provider gives no estimate.
const DefaultResolutionDays = 30

// confirmationNamespace seeds derived confirmation numbers.
var confirmationNamespace = uuid.MustParse("6f1c2a7e-3b0d-5c44-9a8e-2d7f1e0b9c31")

// Gateway is the slice of the provider gateway the orchestrator needs.
type Gateway interface {
	PrimaryName() string
	SubmitDispute(ctx context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error)
	GetDisputeStatus(ctx context.Context, disputeID string) (*models.DisputeStatusView, error)
}

// Orchestrator delegates to the gateway. It never infers dispute state; it
// reports whatever the provider last returned.
type Orchestrator struct {
	gateway        Gateway
	resolutionDays int
	now            func() time.Time
	logger         *common.Logger
}

// New creates an orchestrator. resolutionDays <= 0 uses DefaultResolutionDays.
func New(gateway Gateway, resolutionDays int, logger *common.Logger) *Orchestrator {
	if resolutionDays <= 0 {
		resolutionDays = DefaultResolutionDays
	}
	return &Orchestrator{
		gateway:        gateway,
		resolutionDays: resolutionDays,
		now:            time.Now,
		logger:         common.OrSilent(logger),
	}
}

// Submit files a dispute and fills in any contract fields the provider left blank.
func (o *Orchestrator) Submit(ctx context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error) {
	resp, err := o.gateway.SubmitDispute(ctx, req)
	if err != nil {
		return nil, err
	}

	out := *resp
	if out.Provider == "" {
		out.Provider = o.gateway.PrimaryName()
	}
	if out.ConfirmationNumber == "" && out.DisputeID != "" {
		out.ConfirmationNumber = ConfirmationNumber(out.DisputeID)
	}
	if out.EstimatedResolutionDate.IsZero() {
		submitted := o.now().UTC().Truncate(24 * time.Hour)
		out.EstimatedResolutionDate = submitted.AddDate(0, 0, o.resolutionDays)
	}

	o.logger.Info().
		Str("dispute_id", out.DisputeID).
		Str("confirmation", out.ConfirmationNumber).
		Str("provider", out.Provider).
		Str("estimated_resolution", out.EstimatedResolutionDate.Format("2006-01-02")).
		Msg("dispute submitted")
	return &out, nil
}

// Status returns the provider's current view of a dispute.
func (o *Orchestrator) Status(ctx context.Context, disputeID string) (*models.DisputeStatusView, error) {
	view, err := o.gateway.GetDisputeStatus(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	out := *view
	if out.DisputeID == "" {
		out.DisputeID = disputeID
	}
	if out.Status != models.DisputeResolved {
		out.Resolution = ""
	}
	return &out, nil
}

// ConfirmationNumber derives a stable, human-readable confirmation number from a dispute id.
func ConfirmationNumber(disputeID string) string {
	id := uuid.NewSHA1(confirmationNamespace, []byte(disputeID))
	return "VC-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:10])
}
