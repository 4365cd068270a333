package plaid

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bobmcallan/vire-credit/internal/providers"
)

const (
	mockGeneratedAt   = "2026-01-15T12:00:00Z"
	mockPublicPrefix  = "public-sandbox-"
	mockAccessPrefix  = "access-sandbox-"
	mockDisputePrefix = "pdsp-"
)

// NewMockTransport returns an offline transport serving deterministic link-flow payloads.
// Public tokens must start with "public-sandbox-"; access tokens with "access-sandbox-".
func NewMockTransport() *providers.MockTransport {
	return providers.NewMockTransport(Name, map[string]providers.MockResponder{
		"POST " + endpointLinkToken:  mockLinkToken,
		"POST " + endpointExchange:   mockExchange,
		"POST " + endpointReport:     mockReport,
		"POST " + endpointDispute:    mockDisputeCreate,
		"POST " + endpointDisputeGet: mockDisputeGet,
		"POST " + endpointMonitoring: mockMonitoring,
	})
}

func invalid(msg string) (int, interface{}) {
	return http.StatusBadRequest, map[string]string{"error_message": msg}
}

func mockLinkToken(_ string, body []byte) (int, interface{}) {
	var req wireLinkTokenRequest
	if err := json.Unmarshal(body, &req); err != nil || req.ClientUserID == "" {
		return invalid("client_user_id is required")
	}
	return http.StatusOK, wireLinkTokenResponse{
		LinkToken:  "link-sandbox-" + req.ClientUserID,
		Expiration: "2026-01-15T16:00:00Z",
		RequestID:  "req-" + req.ClientUserID,
	}
}

func mockExchange(_ string, body []byte) (int, interface{}) {
	var req wireExchangeRequest
	if err := json.Unmarshal(body, &req); err != nil || !strings.HasPrefix(req.PublicToken, mockPublicPrefix) {
		return invalid("invalid public token")
	}
	suffix := strings.TrimPrefix(req.PublicToken, mockPublicPrefix)
	return http.StatusOK, wireExchangeResponse{
		AccessToken: mockAccessPrefix + suffix,
		ItemID:      "item-sandbox-" + suffix,
	}
}

func mockReport(_ string, body []byte) (int, interface{}) {
	var req wireReportRequest
	if err := json.Unmarshal(body, &req); err != nil || !strings.HasPrefix(req.AccessToken, mockAccessPrefix) {
		return invalid("invalid access token")
	}
	suffix := strings.TrimPrefix(req.AccessToken, mockAccessPrefix)

	var out wireReportResponse
	for _, b := range req.Bureaus {
		out.Reports = append(out.Reports, wireReport{
			ReportID:    "plaid-" + b + "-" + suffix,
			Bureau:      b,
			GeneratedAt: mockGeneratedAt,
			Score: wireScore{
				Score:     664,
				ModelName: "VantageScore 3.0",
				AsOf:      "2026-01-15",
				ReasonCodes: []wireReasonCode{
					{Code: "P1", Description: "Serious delinquency", Weight: "HIGH"},
					{Code: "P2", Description: "Public record on file", Weight: "HIGH"},
				},
			},
			Identity: wireIdentity{FullName: "Sandbox User"},
			Accounts: []wireAccount{
				{
					AccountID: "pa-001", InstitutionName: "Citi", Mask: "7781", Kind: "credit card", State: "open",
					OpenedDate: "2019-03-01", LastActivityDate: "2025-12-15", Limit: 3000, HighestBalance: 2900,
					Balance: 2850, PaymentRating: "60", Ownership: "individual",
					History: []wireHistoryEntry{{Period: "2025-12", Rating: "60"}, {Period: "2025-11", Rating: "30"}},
				},
				{
					AccountID: "pa-002", InstitutionName: "Navient", Mask: "1204", Kind: "student", State: "open",
					OpenedDate: "2014-09-01", LastActivityDate: "2025-12-01", HighestBalance: 32000,
					Balance: 18000, PaymentAmount: 260, PaymentRating: "current", Ownership: "individual",
				},
			},
			Inquiries: []wireInquiry{
				{InquiryID: "pi-1", Requester: "Synchrony", Date: "2025-12-01", Kind: "hard"},
			},
			PublicRecords: []wirePublicRecord{
				{RecordID: "pr-1", RecordType: "civil_judgment", FiledDate: "2023-04-11", Status: "active", CourtName: "Travis County Court", Docket: "CV-23-0411"},
			},
		})
	}
	return http.StatusOK, out
}

func mockDisputeCreate(_ string, body []byte) (int, interface{}) {
	var req wireDisputeCreateRequest
	if err := json.Unmarshal(body, &req); err != nil || req.AccountID == "" {
		return invalid("account_id is required")
	}
	return http.StatusOK, wireDisputeCreateResponse{
		DisputeID:              mockDisputePrefix + req.Bureau + "-" + req.AccountID,
		ConfirmationCode:       "PLD-" + strings.ToUpper(req.AccountID),
		ExpectedResolutionDate: "2026-02-14",
	}
}

func mockDisputeGet(_ string, body []byte) (int, interface{}) {
	var req wireDisputeGetRequest
	if err := json.Unmarshal(body, &req); err != nil || !strings.HasPrefix(req.DisputeID, mockDisputePrefix) {
		return http.StatusNotFound, map[string]string{"error_message": "dispute not found"}
	}
	return http.StatusOK, wireDisputeGetResponse{Dispute: wireDispute{
		DisputeID:   req.DisputeID,
		Status:      "complete",
		Result:      "modified",
		LastUpdated: "2026-02-10T08:00:00Z",
	}}
}

func mockMonitoring(_ string, body []byte) (int, interface{}) {
	var req wireMonitoringRequest
	if err := json.Unmarshal(body, &req); err != nil || req.ClientUserID == "" {
		return invalid("client_user_id is required")
	}
	return http.StatusOK, wireMonitoringResponse{
		SubscriptionID: "sub-" + req.ClientUserID,
		Status:         "ACTIVE",
		CreatedAt:      mockGeneratedAt,
	}
}
