package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bobmcallan/vire-credit/internal/models"
)

func TestHTTPTransport_SendsBearerJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if r.URL.Path != "/v2/ping" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var in map[string]string
		json.NewDecoder(r.Body).Decode(&in)
		if in["hello"] != "world" {
			t.Errorf("unexpected body: %v", in)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pong":true}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport("array", srv.URL+"/", "secret", time.Second, nil)
	var out struct {
		Pong bool `json:"pong"`
	}
	if err := tr.Do(context.Background(), http.MethodPost, "/v2/ping", map[string]string{"hello": "world"}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Pong {
		t.Error("expected pong=true")
	}
}

func TestHTTPTransport_Non2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"bureau unavailable"}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport("array", srv.URL, "", time.Second, nil)
	err := tr.Do(context.Background(), http.MethodGet, "/v2/x", nil, nil)

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if terr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", terr.StatusCode)
	}
	if terr.Message != "bureau unavailable" {
		t.Errorf("unexpected message: %s", terr.Message)
	}
	if terr.Endpoint != "/v2/x" || terr.Method != http.MethodGet {
		t.Errorf("expected endpoint context, got %s %s", terr.Method, terr.Endpoint)
	}
}

func TestHTTPTransport_TimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	tr := NewHTTPTransport("array", srv.URL, "", 20*time.Millisecond, nil)
	err := tr.Do(context.Background(), http.MethodGet, "/slow", nil, nil)

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %T", err)
	}
	if terr.StatusCode != 0 {
		t.Errorf("expected no status code on timeout, got %d", terr.StatusCode)
	}
}

func TestMockTransport_ExactAndPrefixRoutes(t *testing.T) {
	m := NewMockTransport("array", map[string]MockResponder{
		"POST /v2/credit/reports": func(string, []byte) (int, interface{}) {
			return http.StatusOK, map[string]string{"kind": "exact"}
		},
		"GET /v2/disputes/*": func(endpoint string, _ []byte) (int, interface{}) {
			return http.StatusOK, map[string]string{"kind": "prefix", "endpoint": endpoint}
		},
	})

	var out map[string]string
	if err := m.Do(context.Background(), "POST", "/v2/credit/reports", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["kind"] != "exact" {
		t.Errorf("expected exact route, got %v", out)
	}

	out = nil
	if err := m.Do(context.Background(), "GET", "/v2/disputes/dsp_1", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["endpoint"] != "/v2/disputes/dsp_1" {
		t.Errorf("expected prefix route, got %v", out)
	}

	if len(m.Calls()) != 2 {
		t.Errorf("expected 2 recorded calls, got %d", len(m.Calls()))
	}
}

func TestMockTransport_UnknownRouteIs404(t *testing.T) {
	m := NewMockTransport("array", nil)
	err := m.Do(context.Background(), "GET", "/nope", nil, nil)

	var terr *TransportError
	if !errors.As(err, &terr) || !terr.IsNotFound() {
		t.Fatalf("expected 404 TransportError, got %v", err)
	}
}

func TestMockTransport_ErrorStatus(t *testing.T) {
	m := NewMockTransport("plaid", map[string]MockResponder{
		"POST /x": func(string, []byte) (int, interface{}) {
			return http.StatusBadRequest, map[string]string{"error_message": "bad token"}
		},
	})
	err := m.Do(context.Background(), "POST", "/x", nil, nil)

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Message != "bad token" {
		t.Errorf("unexpected message: %s", terr.Message)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2020-03-15", "2020-03-15"},
		{"2020-03-15T10:00:00Z", "2020-03-15"},
		{"2020-03", "2020-03-01"},
		{"03/15/2020", "2020-03-15"},
	}
	for _, tt := range tests {
		got := ParseDate(tt.in)
		if got == nil {
			t.Errorf("ParseDate(%q) returned nil", tt.in)
			continue
		}
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
	}

	if ParseDate("") != nil {
		t.Error("expected nil for empty date")
	}
	if ParseDate("not a date") != nil {
		t.Error("expected nil for garbage date")
	}
}

func TestClosedAfterOpened(t *testing.T) {
	opened := ParseDate("2020-01-01")
	before := ParseDate("2019-01-01")
	after := ParseDate("2021-01-01")

	if ClosedAfterOpened(opened, before) != nil {
		t.Error("expected close date before open date to be dropped")
	}
	if ClosedAfterOpened(opened, after) != after {
		t.Error("expected valid close date to be kept")
	}
}

func TestParseBureau(t *testing.T) {
	tests := []struct {
		in   string
		want models.Bureau
		ok   bool
	}{
		{"experian", models.BureauExperian, true},
		{"EXP", models.BureauExperian, true},
		{"xpn", models.BureauExperian, true},
		{"Equifax", models.BureauEquifax, true},
		{"EFX", models.BureauEquifax, true},
		{"eqf", models.BureauEquifax, true},
		{"TransUnion", models.BureauTransUnion, true},
		{"trans_union", models.BureauTransUnion, true},
		{"Trans Union", models.BureauTransUnion, true},
		{"trans-union", models.BureauTransUnion, true},
		{" tu ", models.BureauTransUnion, true},
		{"TUC", models.BureauTransUnion, true},
		{"innovis", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseBureau(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseBureau(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMapFactorImpact(t *testing.T) {
	tests := map[string]models.ImpactLevel{
		"HIGH":   models.ImpactHigh,
		"medium": models.ImpactMedium,
		"LOW":    models.ImpactLow,
		"SEVERE": models.ImpactLow,
		"":       models.ImpactLow,
	}
	for in, want := range tests {
		if got := MapFactorImpact(in); got != want {
			t.Errorf("MapFactorImpact(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	v := &ValidationError{Field: "tax_id", Reason: "must be 9 digits"}
	if v.Error() != "validation failed: tax_id must be 9 digits" {
		t.Errorf("unexpected message: %s", v.Error())
	}

	u := &UnsupportedFlowError{Provider: "plaid", Operation: "direct pull", Reason: "requires link flow"}
	if u.Error() != "plaid does not support direct pull: requires link flow" {
		t.Errorf("unexpected message: %s", u.Error())
	}

	n := &NotFoundError{Resource: "dispute", ID: "d1"}
	if n.Error() != "dispute not found: d1" {
		t.Errorf("unexpected message: %s", n.Error())
	}
}
