package models

import "time"

// PullRecord is the stored outcome of one credit pull. The raw tax id is never
// kept; TaxIDHash is a bcrypt hash of its digits.
type PullRecord struct {
	ID        string        `json:"id" badgerhold:"key"`
	UserID    string        `json:"user_id" badgerholdIndex:"UserID"`
	Provider  string        `json:"provider"`
	Flow      string        `json:"flow"` // direct | link
	TaxIDHash string        `json:"-"`
	ReportIDs []string      `json:"report_ids"`
	Errors    []BureauError `json:"errors,omitempty"`
	Success   bool          `json:"success"`
	PulledAt  time.Time     `json:"pulled_at"`
}

// DisputeRecord is the stored form of a submitted dispute.
type DisputeRecord struct {
	DisputeID               string        `json:"dispute_id" badgerhold:"key"`
	UserID                  string        `json:"user_id" badgerholdIndex:"UserID"`
	ReportID                string        `json:"report_id"`
	AccountID               string        `json:"account_id"`
	Bureau                  Bureau        `json:"bureau"`
	Reason                  DisputeReason `json:"reason"`
	ConfirmationNumber      string        `json:"confirmation_number"`
	EstimatedResolutionDate time.Time     `json:"estimated_resolution_date"`
	Provider                string        `json:"provider"`
	LastStatus              DisputeStatus `json:"last_status"`
	SubmittedAt             time.Time     `json:"submitted_at"`
}

// Pull flows recorded on a PullRecord.
const (
	FlowDirect = "direct"
	FlowLink   = "link"
)

// PullResult is a pull response together with the id of its stored record.
type PullResult struct {
	PullID   string `json:"pull_id"`
	Provider string `json:"provider"`
	Flow     string `json:"flow"`
	PullCreditResponse
}
