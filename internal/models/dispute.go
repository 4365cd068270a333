package models

import "time"

// DisputeReason is the closed set of grounds a consumer can dispute an item on.
type DisputeReason string

const (
	ReasonNotMyAccount           DisputeReason = "not_my_account"
	ReasonIncorrectBalance       DisputeReason = "incorrect_balance"
	ReasonIncorrectPaymentStatus DisputeReason = "incorrect_payment_status"
	ReasonAccountPaid            DisputeReason = "account_paid"
	ReasonDuplicateAccount       DisputeReason = "duplicate_account"
	ReasonOutdatedInformation    DisputeReason = "outdated_information"
	ReasonIdentityTheft          DisputeReason = "identity_theft"
	ReasonIncorrectDates         DisputeReason = "incorrect_dates"
	ReasonIncorrectCreditLimit   DisputeReason = "incorrect_credit_limit"
	ReasonAccountClosed          DisputeReason = "account_closed"
	ReasonNeverLate              DisputeReason = "never_late"
	ReasonOther                  DisputeReason = "other"
)

var disputeReasons = map[DisputeReason]bool{
	ReasonNotMyAccount:           true,
	ReasonIncorrectBalance:       true,
	ReasonIncorrectPaymentStatus: true,
	ReasonAccountPaid:            true,
	ReasonDuplicateAccount:       true,
	ReasonOutdatedInformation:    true,
	ReasonIdentityTheft:          true,
	ReasonIncorrectDates:         true,
	ReasonIncorrectCreditLimit:   true,
	ReasonAccountClosed:          true,
	ReasonNeverLate:              true,
	ReasonOther:                  true,
}

// Valid reports whether r is a known dispute reason.
func (r DisputeReason) Valid() bool {
	return disputeReasons[r]
}

// DisputeStatus is the lifecycle state of a dispute: pending -> in_progress -> resolved.
type DisputeStatus string

const (
	DisputePending    DisputeStatus = "pending"
	DisputeInProgress DisputeStatus = "in_progress"
	DisputeResolved   DisputeStatus = "resolved"
)

// DisputeResolution is the terminal outcome carried by a resolved dispute.
type DisputeResolution string

const (
	ResolutionVerified DisputeResolution = "verified"
	ResolutionUpdated  DisputeResolution = "updated"
	ResolutionDeleted  DisputeResolution = "deleted"
)

// DisputeStatusView is the provider-agnostic status of a submitted dispute.
// Resolution is only set when Status is resolved.
type DisputeStatusView struct {
	DisputeID  string            `json:"dispute_id"`
	Status     DisputeStatus     `json:"status"`
	Resolution DisputeResolution `json:"resolution,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// SubmitDisputeRequest asks a provider to open a dispute on one report item.
type SubmitDisputeRequest struct {
	UserID              string        `json:"user_id"`
	ReportID            string        `json:"report_id"`
	AccountID           string        `json:"account_id"`
	Bureau              Bureau        `json:"bureau"`
	Reason              DisputeReason `json:"reason"`
	Explanation         string        `json:"explanation"`
	SupportingDocuments []string      `json:"supporting_documents,omitempty"`
}

// SubmitDisputeResponse is the stable external contract for a submitted dispute.
type SubmitDisputeResponse struct {
	Success                 bool      `json:"success"`
	DisputeID               string    `json:"dispute_id"`
	ConfirmationNumber      string    `json:"confirmation_number"`
	EstimatedResolutionDate time.Time `json:"estimated_resolution_date"`
	Provider                string    `json:"provider,omitempty"`
}
