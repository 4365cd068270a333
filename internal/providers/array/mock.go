package array

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bobmcallan/vire-credit/internal/providers"
)

// mockPulledAt is the fixed pull timestamp of every mock report.
const mockPulledAt = "2026-01-15T12:00:00Z"

// mockDisputePrefix marks dispute ids the mock status endpoint knows about.
const mockDisputePrefix = "dsp_"

// NewMockTransport returns an offline transport serving deterministic v2 payloads.
// A consumer whose last name is "Partial" gets a TransUnion bureau error.
func NewMockTransport() *providers.MockTransport {
	return providers.NewMockTransport(Name, map[string]providers.MockResponder{
		"POST " + endpointReports:        mockPull,
		"POST " + endpointDisputes:       mockSubmitDispute,
		"GET " + endpointDisputes + "/*": mockDisputeStatus,
		"POST " + endpointMonitoring:     mockEnroll,
	})
}

var mockScores = map[string]int{"EXP": 712, "EFX": 698, "TUC": 705}

func mockPull(_ string, body []byte) (int, interface{}) {
	var req wirePullRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return http.StatusBadRequest, map[string]string{"error": "invalid request body"}
	}

	var out wirePullResponse
	for _, b := range req.Bureaus {
		if b == "TUC" && strings.EqualFold(req.Consumer.LastName, "Partial") {
			out.Errors = append(out.Errors, wireBureauError{Bureau: b, Message: "bureau temporarily unavailable"})
			continue
		}
		out.Reports = append(out.Reports, mockReport(req, b))
	}
	return http.StatusOK, out
}

func mockReport(req wirePullRequest, bureau string) wireReport {
	key := "rpt_" + strings.ToLower(bureau) + "_" + req.UserID
	return wireReport{
		ReportKey: key,
		Bureau:    bureau,
		PulledAt:  mockPulledAt,
		Score: wireScore{
			Value: mockScores[bureau],
			Model: "FICO8",
			Date:  "2026-01-15",
			Factors: []wireFactor{
				{Code: "10", Description: "Proportion of balances to credit limits is too high", Impact: "HIGH"},
				{Code: "18", Description: "Number of accounts with delinquency", Impact: "MEDIUM"},
				{Code: "08", Description: "Too many inquiries last 12 months", Impact: "LOW"},
			},
		},
		Consumer: wireConsumer{
			Name:      strings.TrimSpace(req.Consumer.FirstName + " " + req.Consumer.LastName),
			DOB:       req.Consumer.DateOfBirth,
			Addresses: []wireAddress{req.Consumer.Address},
			Employers: []string{"Acme Logistics"},
		},
		Tradelines: []wireTradeline{
			{
				ID: "tl_chase_4821", Creditor: "Chase Bank", AccountNumber: "XXXX4821",
				Type: "CREDIT_CARD", Status: "OPEN", Opened: "2012-04-01", LastActivity: "2025-12-20",
				CreditLimit: 5000, HighBalance: 4200, Balance: 3900, MonthlyPayment: 120,
				PaymentStatus: "CURRENT", Responsibility: "INDIVIDUAL",
				History: []wireHistoryEntry{{Month: "2025-12", Code: "CURRENT"}, {Month: "2025-11", Code: "CURRENT"}},
			},
			{
				ID: "tl_capone_1177", Creditor: "Capital One", AccountNumber: "XXXX1177",
				Type: "REVOLVING", Status: "OPEN", Opened: "2016-09-12", LastActivity: "2025-12-02",
				CreditLimit: 2000, HighBalance: 900, Balance: 400, MonthlyPayment: 35,
				PaymentStatus: "LATE_30", Responsibility: "INDIVIDUAL",
				History: []wireHistoryEntry{{Month: "2025-12", Code: "LATE_30"}, {Month: "2025-11", Code: "CURRENT"}},
			},
			{
				ID: "tl_ally_5530", Creditor: "Ally Financial", AccountNumber: "XXXX5530",
				Type: "AUTO", Status: "OPEN", Opened: "2021-06-30", LastActivity: "2025-12-28",
				HighBalance: 24000, Balance: 11800, MonthlyPayment: 410,
				PaymentStatus: "CURRENT", Responsibility: "JOINT",
			},
			{
				ID: "tl_macys_0042", Creditor: "Macy's", AccountNumber: "XXXX0042",
				Type: "RETAIL", Status: "CLOSED", Opened: "2010-02-01", Closed: "2017-03-01", LastActivity: "2017-02-01",
				CreditLimit: 800, HighBalance: 780, Balance: 610,
				PaymentStatus: "LATE_90", Responsibility: "INDIVIDUAL",
				Remarks: []string{"Account closed by credit grantor"},
			},
		},
		Inquiries: []wireInquiry{
			{ID: "inq_1", Creditor: "Discover", Date: "2025-10-03", Type: "HARD", Purpose: "credit card"},
			{ID: "inq_2", Creditor: "Wells Fargo", Date: "2025-06-18", Type: "HARD", Purpose: "auto loan"},
			{ID: "inq_3", Creditor: "Credit Karma", Date: "2025-11-01", Type: "SOFT"},
		},
		Collections: []wireCollection{
			{
				ID: "col_midland_9912", Agency: "Midland Credit Management", AccountNumber: "XXXX9912",
				Opened: "2022-05-01", Reported: "2025-11-30", OriginalBalance: 640, Balance: 640, Status: "OPEN",
			},
			{
				ID: "col_pra_3301", Agency: "Portfolio Recovery Associates", OriginalCreditor: "Verizon Wireless",
				AccountNumber: "XXXX3301", Opened: "2018-08-01", Reported: "2020-02-01",
				OriginalBalance: 310, Balance: 0, Status: "PAID",
			},
		},
	}
}

func mockSubmitDispute(_ string, body []byte) (int, interface{}) {
	var req wireDisputeRequest
	if err := json.Unmarshal(body, &req); err != nil || req.TradelineID == "" {
		return http.StatusBadRequest, map[string]string{"error": "tradelineId is required"}
	}
	id := mockDisputePrefix + strings.ToLower(req.Bureau) + "_" + req.TradelineID
	return http.StatusOK, wireDisputeResponse{
		DisputeID:               id,
		ConfirmationNumber:      "ARR-" + strings.ToUpper(req.Bureau) + "-" + strings.ToUpper(req.TradelineID),
		EstimatedCompletionDate: "2026-02-14",
		Status:                  "SUBMITTED",
	}
}

func mockDisputeStatus(endpoint string, _ []byte) (int, interface{}) {
	id := strings.TrimPrefix(endpoint, endpointDisputes+"/")
	if !strings.HasPrefix(id, mockDisputePrefix) {
		return http.StatusNotFound, map[string]string{"error": "dispute not found"}
	}
	return http.StatusOK, wireDisputeStatus{
		DisputeID: id,
		Status:    "IN_PROGRESS",
		UpdatedAt: "2026-01-20T09:30:00Z",
	}
}

func mockEnroll(_ string, body []byte) (int, interface{}) {
	var req wireEnrollmentRequest
	if err := json.Unmarshal(body, &req); err != nil || req.UserID == "" {
		return http.StatusBadRequest, map[string]string{"error": "userId is required"}
	}
	return http.StatusOK, wireEnrollment{
		EnrollmentID: "enr_" + req.UserID,
		Status:       "ACTIVE",
		EnrolledAt:   mockPulledAt,
	}
}
