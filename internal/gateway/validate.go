package gateway

import (
	"regexp"
	"strings"
	"time"

	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

// taxIDPattern accepts nine digits, optionally dashed as 123-45-6789.
var taxIDPattern = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)

// ValidatePullRequest checks a pull request locally. It never touches the network.
func ValidatePullRequest(req models.PullCreditRequest) error {
	if strings.TrimSpace(req.UserID) == "" {
		return &providers.ValidationError{Field: "user_id", Reason: "is required"}
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return &providers.ValidationError{Field: "first_name", Reason: "is required"}
	}
	if strings.TrimSpace(req.LastName) == "" {
		return &providers.ValidationError{Field: "last_name", Reason: "is required"}
	}
	if !taxIDPattern.MatchString(strings.TrimSpace(req.TaxID)) {
		return &providers.ValidationError{Field: "tax_id", Reason: "must be 9 digits, optionally formatted as 123-45-6789"}
	}
	if req.ConsentTimestamp.IsZero() {
		return &providers.ValidationError{Field: "consent_timestamp", Reason: "is required"}
	}
	if req.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
			return &providers.ValidationError{Field: "date_of_birth", Reason: "must be YYYY-MM-DD"}
		}
	}
	for _, b := range req.Bureaus {
		if !b.Valid() {
			return &providers.ValidationError{Field: "bureaus", Reason: "contains unknown bureau " + string(b)}
		}
	}
	return nil
}

// ValidateDisputeRequest checks a dispute submission locally.
func ValidateDisputeRequest(req models.SubmitDisputeRequest) error {
	switch {
	case strings.TrimSpace(req.UserID) == "":
		return &providers.ValidationError{Field: "user_id", Reason: "is required"}
	case strings.TrimSpace(req.ReportID) == "":
		return &providers.ValidationError{Field: "report_id", Reason: "is required"}
	case strings.TrimSpace(req.AccountID) == "":
		return &providers.ValidationError{Field: "account_id", Reason: "is required"}
	case !req.Bureau.Valid():
		return &providers.ValidationError{Field: "bureau", Reason: "must be experian, equifax or transunion"}
	case !req.Reason.Valid():
		return &providers.ValidationError{Field: "reason", Reason: "is not a known dispute reason"}
	}
	return nil
}

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &providers.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}
