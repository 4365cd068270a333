package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

// fakeService records its inputs and returns canned results or err.
type fakeService struct {
	err error

	pullReq     models.PullCreditRequest
	accessToken string
	userID      string
	publicToken string
	reportID    string
	refresh     bool
	disputeReq  models.SubmitDisputeRequest
	disputeID   string
}

func (f *fakeService) PullReport(_ context.Context, req models.PullCreditRequest) (*models.PullResult, error) {
	f.pullReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.PullResult{
		PullID:             "pull-1",
		Provider:           "array",
		Flow:               models.FlowDirect,
		PullCreditResponse: models.PullCreditResponse{Success: true, Reports: []models.CreditReport{{ID: "rpt-1"}}},
	}, nil
}

func (f *fakeService) CreateLinkToken(_ context.Context, userID string) (*models.LinkToken, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.LinkToken{Token: "link-sandbox-" + userID}, nil
}

func (f *fakeService) ExchangePublicToken(_ context.Context, publicToken string) (*models.LinkExchange, error) {
	f.publicToken = publicToken
	if f.err != nil {
		return nil, f.err
	}
	return &models.LinkExchange{AccessToken: "access-sandbox-1", ItemID: "item-1"}, nil
}

func (f *fakeService) PullLinkedReport(_ context.Context, accessToken string, req models.PullCreditRequest) (*models.PullResult, error) {
	f.accessToken = accessToken
	f.pullReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.PullResult{PullID: "pull-2", Provider: "plaid", Flow: models.FlowLink}, nil
}

func (f *fakeService) GetPull(_ context.Context, id string) (*models.PullRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PullRecord{ID: id, TaxIDHash: "$2a$secret"}, nil
}

func (f *fakeService) ListPulls(_ context.Context, userID string) ([]models.PullRecord, error) {
	f.userID = userID
	return nil, f.err
}

func (f *fakeService) GetReport(_ context.Context, id string) (*models.CreditReport, error) {
	f.reportID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.CreditReport{ID: id}, nil
}

func (f *fakeService) ListReports(_ context.Context, userID string) ([]models.CreditReport, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return []models.CreditReport{{ID: "rpt-1", UserID: userID}}, nil
}

func (f *fakeService) GetAnalysis(_ context.Context, reportID string, refresh bool) (*models.CreditAnalysis, error) {
	f.reportID = reportID
	f.refresh = refresh
	if f.err != nil {
		return nil, f.err
	}
	return &models.CreditAnalysis{ReportID: reportID, OverallHealth: models.HealthGood}, nil
}

func (f *fakeService) AnalyzeReport(report models.CreditReport) *models.CreditAnalysis {
	return &models.CreditAnalysis{ReportID: report.ID, OverallHealth: models.HealthFair}
}

func (f *fakeService) SubmitDispute(_ context.Context, req models.SubmitDisputeRequest) (*models.SubmitDisputeResponse, error) {
	f.disputeReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SubmitDisputeResponse{Success: true, DisputeID: "dsp-1", ConfirmationNumber: "VC-1"}, nil
}

func (f *fakeService) DisputeStatus(_ context.Context, disputeID string) (*models.DisputeStatusView, error) {
	f.disputeID = disputeID
	if f.err != nil {
		return nil, f.err
	}
	return &models.DisputeStatusView{DisputeID: disputeID, Status: models.DisputeInProgress}, nil
}

func (f *fakeService) ListDisputes(_ context.Context, userID string) ([]models.DisputeRecord, error) {
	f.userID = userID
	return nil, f.err
}

func (f *fakeService) EnableMonitoring(_ context.Context, userID string) (*models.MonitoringHandle, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.MonitoringHandle{ID: "enr_" + userID, UserID: userID, Status: "active"}, nil
}

func (f *fakeService) ListMonitoring(_ context.Context, userID string) ([]models.MonitoringHandle, error) {
	f.userID = userID
	return nil, f.err
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
}

func TestCreditHandler_Pull(t *testing.T) {
	svc := &fakeService{}
	h := NewCreditHandler(nil, svc)

	body := `{"user_id":"u1","first_name":"Jane","last_name":"Doe","tax_id":"123-45-6789","consent_timestamp":"2026-01-15T11:00:00Z","bureaus":["experian"]}`
	req := httptest.NewRequest("POST", "/api/credit/pull", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Pull(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.pullReq.UserID != "u1" || len(svc.pullReq.Bureaus) != 1 {
		t.Errorf("request not decoded: %+v", svc.pullReq)
	}
	if !svc.pullReq.ConsentTimestamp.Equal(time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected consent timestamp: %v", svc.pullReq.ConsentTimestamp)
	}

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	if resp["pull_id"] != "pull-1" || resp["success"] != true {
		t.Errorf("unexpected response: %v", resp)
	}
	if _, ok := resp["reports"]; !ok {
		t.Error("expected embedded reports in response")
	}
}

func TestCreditHandler_PullErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &providers.ValidationError{Field: "tax_id", Reason: "must be 9 digits"}, http.StatusBadRequest},
		{"transport", &providers.TransportError{Provider: "array", StatusCode: 500, Message: "down"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCreditHandler(nil, &fakeService{err: tt.err})
			req := httptest.NewRequest("POST", "/api/credit/pull", strings.NewReader(`{}`))
			w := httptest.NewRecorder()

			h.Pull(w, req)

			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, w.Code)
			}
			var body map[string]string
			decodeBody(t, w, &body)
			if body["status"] != "error" || body["error"] != tt.err.Error() {
				t.Errorf("unexpected error body: %v", body)
			}
		})
	}
}

func TestCreditHandler_PullMalformedBody(t *testing.T) {
	svc := &fakeService{}
	h := NewCreditHandler(nil, svc)

	req := httptest.NewRequest("POST", "/api/credit/pull", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()

	h.Pull(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if svc.pullReq.UserID != "" {
		t.Error("service should not be called on malformed body")
	}
}

func TestCreditHandler_PullRejectsGET(t *testing.T) {
	h := NewCreditHandler(nil, &fakeService{})

	req := httptest.NewRequest("GET", "/api/credit/pull", nil)
	w := httptest.NewRecorder()

	h.Pull(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestCreditHandler_LinkFlow(t *testing.T) {
	svc := &fakeService{}
	h := NewCreditHandler(nil, svc)

	w := httptest.NewRecorder()
	h.LinkToken(w, httptest.NewRequest("POST", "/api/credit/link/token", strings.NewReader(`{"user_id":"u1"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("link token: expected 200, got %d", w.Code)
	}
	var token map[string]interface{}
	decodeBody(t, w, &token)
	if token["link_token"] != "link-sandbox-u1" {
		t.Errorf("unexpected link token: %v", token)
	}

	w = httptest.NewRecorder()
	h.LinkExchange(w, httptest.NewRequest("POST", "/api/credit/link/exchange", strings.NewReader(`{"public_token":"public-sandbox-1"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("exchange: expected 200, got %d", w.Code)
	}
	if svc.publicToken != "public-sandbox-1" {
		t.Errorf("expected public token passed through, got %q", svc.publicToken)
	}

	w = httptest.NewRecorder()
	body := `{"access_token":"access-sandbox-1","user_id":"u1","first_name":"Jane"}`
	h.LinkPull(w, httptest.NewRequest("POST", "/api/credit/link/pull", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("link pull: expected 200, got %d", w.Code)
	}
	if svc.accessToken != "access-sandbox-1" || svc.pullReq.UserID != "u1" || svc.pullReq.FirstName != "Jane" {
		t.Errorf("link pull request not split correctly: token=%q req=%+v", svc.accessToken, svc.pullReq)
	}
}

func TestCreditHandler_LinkUnsupported(t *testing.T) {
	h := NewCreditHandler(nil, &fakeService{err: &providers.UnsupportedFlowError{Provider: "array", Operation: "link token", Reason: "no link-flow provider configured"}})

	w := httptest.NewRecorder()
	h.LinkToken(w, httptest.NewRequest("POST", "/api/credit/link/token", strings.NewReader(`{"user_id":"u1"}`)))

	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", w.Code)
	}
}

func TestCreditHandler_ReportByID(t *testing.T) {
	svc := &fakeService{}
	h := NewCreditHandler(nil, svc)

	req := httptest.NewRequest("GET", "/api/credit/reports/rpt-9", nil)
	req.SetPathValue("id", "rpt-9")
	w := httptest.NewRecorder()

	h.Report(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if svc.reportID != "rpt-9" {
		t.Errorf("expected report id rpt-9, got %s", svc.reportID)
	}
}

func TestCreditHandler_ReportNotFound(t *testing.T) {
	h := NewCreditHandler(nil, &fakeService{err: &providers.NotFoundError{Resource: "report", ID: "rpt-9"}})

	req := httptest.NewRequest("GET", "/api/credit/reports/rpt-9", nil)
	req.SetPathValue("id", "rpt-9")
	w := httptest.NewRecorder()

	h.Report(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestCreditHandler_Analysis(t *testing.T) {
	tests := []struct {
		query   string
		refresh bool
	}{
		{"", false},
		{"?refresh=true", true},
		{"?refresh=1", true},
		{"?refresh=nonsense", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			svc := &fakeService{}
			h := NewCreditHandler(nil, svc)

			req := httptest.NewRequest("GET", "/api/credit/reports/rpt-1/analysis"+tt.query, nil)
			req.SetPathValue("id", "rpt-1")
			w := httptest.NewRecorder()

			h.Analysis(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if svc.refresh != tt.refresh {
				t.Errorf("expected refresh=%v, got %v", tt.refresh, svc.refresh)
			}
			var a models.CreditAnalysis
			decodeBody(t, w, &a)
			if a.ReportID != "rpt-1" {
				t.Errorf("unexpected analysis: %+v", a)
			}
		})
	}
}

func TestCreditHandler_Analyze(t *testing.T) {
	h := NewCreditHandler(nil, &fakeService{})

	w := httptest.NewRecorder()
	h.Analyze(w, httptest.NewRequest("POST", "/api/credit/analyze", strings.NewReader(`{"id":"adhoc","accounts":[]}`)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var a models.CreditAnalysis
	decodeBody(t, w, &a)
	if a.ReportID != "adhoc" || a.OverallHealth != models.HealthFair {
		t.Errorf("unexpected analysis: %+v", a)
	}
}

func TestCreditHandler_ListsReturnEmptyArrays(t *testing.T) {
	svc := &fakeService{}
	h := NewCreditHandler(nil, svc)

	w := httptest.NewRecorder()
	h.Pulls(w, httptest.NewRequest("GET", "/api/credit/pulls?user_id=u1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
	if svc.userID != "u1" {
		t.Errorf("expected user_id u1, got %s", svc.userID)
	}
}

func TestCreditHandler_PullRecordHidesTaxHash(t *testing.T) {
	h := NewCreditHandler(nil, &fakeService{})

	req := httptest.NewRequest("GET", "/api/credit/pulls/pull-1", nil)
	req.SetPathValue("id", "pull-1")
	w := httptest.NewRecorder()

	h.PullRecord(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Errorf("tax id hash leaked: %s", w.Body.String())
	}
}
