package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

func TestDisputeHandler_Submit(t *testing.T) {
	svc := &fakeService{}
	h := NewDisputeHandler(nil, svc)

	body := `{"user_id":"u1","report_id":"rpt-1","account_id":"tl_1","bureau":"experian","reason":"never_late","explanation":"paid on time"}`
	w := httptest.NewRecorder()
	h.Submit(w, httptest.NewRequest("POST", "/api/disputes", strings.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.disputeReq.Reason != models.ReasonNeverLate || svc.disputeReq.Bureau != models.BureauExperian {
		t.Errorf("request not decoded: %+v", svc.disputeReq)
	}

	var resp models.SubmitDisputeResponse
	decodeBody(t, w, &resp)
	if resp.DisputeID != "dsp-1" || resp.ConfirmationNumber != "VC-1" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestDisputeHandler_SubmitValidation(t *testing.T) {
	h := NewDisputeHandler(nil, &fakeService{err: &providers.ValidationError{Field: "reason", Reason: "is not a known dispute reason"}})

	w := httptest.NewRecorder()
	h.Submit(w, httptest.NewRequest("POST", "/api/disputes", strings.NewReader(`{"reason":"because"}`)))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestDisputeHandler_Status(t *testing.T) {
	svc := &fakeService{}
	h := NewDisputeHandler(nil, svc)

	req := httptest.NewRequest("GET", "/api/disputes/dsp-1", nil)
	req.SetPathValue("id", "dsp-1")
	w := httptest.NewRecorder()

	h.Status(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var view models.DisputeStatusView
	decodeBody(t, w, &view)
	if view.Status != models.DisputeInProgress || svc.disputeID != "dsp-1" {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestDisputeHandler_StatusNotFound(t *testing.T) {
	h := NewDisputeHandler(nil, &fakeService{err: &providers.NotFoundError{Resource: "dispute", ID: "nope"}})

	req := httptest.NewRequest("GET", "/api/disputes/nope", nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()

	h.Status(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestDisputeHandler_ListRequiresUser(t *testing.T) {
	h := NewDisputeHandler(nil, &fakeService{err: &providers.ValidationError{Field: "user_id", Reason: "is required"}})

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest("GET", "/api/disputes", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestMonitoringHandler_Enable(t *testing.T) {
	svc := &fakeService{}
	h := NewMonitoringHandler(nil, svc)

	w := httptest.NewRecorder()
	h.Enable(w, httptest.NewRequest("POST", "/api/monitoring", strings.NewReader(`{"user_id":"u1"}`)))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	var handle models.MonitoringHandle
	decodeBody(t, w, &handle)
	if handle.ID != "enr_u1" || handle.UserID != "u1" {
		t.Errorf("unexpected handle: %+v", handle)
	}
}

func TestMonitoringHandler_EnableUpstreamFailure(t *testing.T) {
	h := NewMonitoringHandler(nil, &fakeService{err: &providers.TransportError{Provider: "array", Message: "timeout"}})

	w := httptest.NewRecorder()
	h.Enable(w, httptest.NewRequest("POST", "/api/monitoring", strings.NewReader(`{"user_id":"u1"}`)))

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", w.Code)
	}
}

func TestMonitoringHandler_List(t *testing.T) {
	svc := &fakeService{}
	h := NewMonitoringHandler(nil, svc)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest("GET", "/api/monitoring?user_id=u1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}
