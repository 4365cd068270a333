package models

import "time"

// PullCreditRequest is the provider-agnostic request for a full credit report pull.
type PullCreditRequest struct {
	UserID           string    `json:"user_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	TaxID            string    `json:"tax_id"`        // 9 digits, dashes tolerated
	DateOfBirth      string    `json:"date_of_birth"` // YYYY-MM-DD
	Address          Address   `json:"address"`
	Bureaus          []Bureau  `json:"bureaus,omitempty"`
	ConsentTimestamp time.Time `json:"consent_timestamp"`
	IPAddress        string    `json:"ip_address"`
}

// RequestedBureaus returns the requested bureau subset, or all three when none were named.
func (r PullCreditRequest) RequestedBureaus() []Bureau {
	if len(r.Bureaus) == 0 {
		return AllBureaus()
	}
	out := make([]Bureau, len(r.Bureaus))
	copy(out, r.Bureaus)
	return out
}

// BureauError records one bureau's failure inside an otherwise successful pull.
type BureauError struct {
	Bureau Bureau `json:"bureau"`
	Error  string `json:"error"`
}

// PullCreditResponse carries the reports a provider returned. A non-empty Errors
// list with Success still true means partial data, not total failure.
type PullCreditResponse struct {
	Success bool           `json:"success"`
	Reports []CreditReport `json:"reports"`
	Errors  []BureauError  `json:"errors,omitempty"`
}

// MonitoringHandle is returned when credit monitoring is registered with a provider.
type MonitoringHandle struct {
	ID        string    `json:"id" badgerhold:"key"`
	UserID    string    `json:"user_id" badgerholdIndex:"UserID"`
	Provider  string    `json:"provider"`
	Status    string    `json:"status"`
	EnabledAt time.Time `json:"enabled_at"`
}

// LinkToken is the short-lived token that starts a link flow.
type LinkToken struct {
	Token      string    `json:"link_token"`
	Expiration time.Time `json:"expiration"`
}

// LinkExchange is the result of exchanging a public token from a completed link flow.
type LinkExchange struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}
