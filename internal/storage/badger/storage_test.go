package badger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/vire-credit/internal/config"
	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

func setupTestManager(t *testing.T) *Manager {
	t.Helper()

	cfg := &config.BadgerConfig{Path: filepath.Join(t.TempDir(), "db")}
	m, err := NewManager(nil, cfg)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}
	m.reports.bcryptCost = bcrypt.MinCost
	t.Cleanup(func() { m.Close() })
	return m
}

func testPull() (models.PullCreditRequest, *models.PullCreditResponse) {
	req := models.PullCreditRequest{UserID: "user-1", TaxID: "123-45-6789"}
	resp := &models.PullCreditResponse{
		Success: true,
		Reports: []models.CreditReport{
			{ID: "r-old", UserID: "user-1", Bureau: models.BureauExperian, PullDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "r-new", UserID: "user-1", Bureau: models.BureauEquifax, PullDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
				Accounts: []models.TradelineAccount{{ID: "a1", CreditorName: "Chase", CreditLimit: 5000, DateOpened: date(2012, 4, 1)}}},
		},
		Errors: []models.BureauError{{Bureau: models.BureauTransUnion, Error: "frozen"}},
	}
	return req, resp
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestReportStorage_SavePull(t *testing.T) {
	s := setupTestManager(t).ReportStorage()
	ctx := context.Background()
	req, resp := testPull()

	record, err := s.SavePull(ctx, req, "array", "direct", resp)
	if err != nil {
		t.Fatalf("SavePull failed: %v", err)
	}
	if record.ID == "" || record.Provider != "array" || record.Flow != "direct" {
		t.Errorf("unexpected record: %+v", record)
	}
	if len(record.ReportIDs) != 2 || len(record.Errors) != 1 {
		t.Errorf("expected 2 report ids and 1 error, got %+v", record)
	}
	if record.TaxIDHash == "" || record.TaxIDHash == "123456789" {
		t.Error("expected a hashed tax id")
	}
	if !MatchesTaxID(record, "123456789") {
		t.Error("expected tax id digits to match the stored hash")
	}
	if MatchesTaxID(record, "987654321") {
		t.Error("expected a different tax id not to match")
	}

	got, err := s.GetPull(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetPull failed: %v", err)
	}
	if got.UserID != "user-1" || len(got.ReportIDs) != 2 {
		t.Errorf("unexpected stored record: %+v", got)
	}

	report, err := s.GetReport(ctx, "r-new")
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if len(report.Accounts) != 1 || report.Accounts[0].CreditorName != "Chase" {
		t.Errorf("unexpected stored report: %+v", report)
	}
	if report.Accounts[0].DateOpened == nil || !report.Accounts[0].DateOpened.Equal(*date(2012, 4, 1)) {
		t.Error("expected optional dates to round-trip")
	}
}

func TestReportStorage_ListReportsNewestFirst(t *testing.T) {
	s := setupTestManager(t).ReportStorage()
	ctx := context.Background()
	req, resp := testPull()

	if _, err := s.SavePull(ctx, req, "array", "direct", resp); err != nil {
		t.Fatalf("SavePull failed: %v", err)
	}
	if err := s.SaveReport(ctx, &models.CreditReport{ID: "other", UserID: "user-2"}); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	reports, err := s.ListReports(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].ID != "r-new" || reports[1].ID != "r-old" {
		t.Errorf("expected newest first, got %s, %s", reports[0].ID, reports[1].ID)
	}

	pulls, err := s.ListPulls(ctx, "user-1")
	if err != nil || len(pulls) != 1 {
		t.Errorf("expected one pull, got %d (%v)", len(pulls), err)
	}
}

func TestReportStorage_NotFound(t *testing.T) {
	s := setupTestManager(t).ReportStorage()
	ctx := context.Background()

	_, err := s.GetReport(ctx, "missing")
	var nerr *providers.NotFoundError
	if !errors.As(err, &nerr) || nerr.Resource != "report" {
		t.Errorf("expected report NotFoundError, got %v", err)
	}

	_, err = s.GetAnalysis(ctx, "missing")
	if !errors.As(err, &nerr) || nerr.Resource != "analysis" {
		t.Errorf("expected analysis NotFoundError, got %v", err)
	}
}

func TestReportStorage_SaveReportRequiresID(t *testing.T) {
	s := setupTestManager(t).ReportStorage()

	err := s.SaveReport(context.Background(), &models.CreditReport{})
	var verr *providers.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestReportStorage_AnalysisReplacesEarlier(t *testing.T) {
	s := setupTestManager(t).ReportStorage()
	ctx := context.Background()

	first := &models.CreditAnalysis{ReportID: "r1", OverallHealth: models.HealthFair}
	second := &models.CreditAnalysis{ReportID: "r1", OverallHealth: models.HealthGood,
		Issues: []models.CreditIssue{{ID: "i1", PotentialScoreImpact: 20}}}

	if err := s.SaveAnalysis(ctx, first); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	if err := s.SaveAnalysis(ctx, second); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}

	got, err := s.GetAnalysis(ctx, "r1")
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if got.OverallHealth != models.HealthGood || len(got.Issues) != 1 {
		t.Errorf("expected latest analysis, got %+v", got)
	}
}

func TestDisputeStorage_Lifecycle(t *testing.T) {
	s := setupTestManager(t).DisputeStorage()
	ctx := context.Background()

	rec := &models.DisputeRecord{
		DisputeID:   "d1",
		UserID:      "user-1",
		AccountID:   "a1",
		Bureau:      models.BureauExperian,
		Reason:      models.ReasonAccountPaid,
		LastStatus:  models.DisputePending,
		SubmittedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.SaveDispute(ctx, rec); err != nil {
		t.Fatalf("SaveDispute failed: %v", err)
	}
	if err := s.SaveDispute(ctx, &models.DisputeRecord{DisputeID: "d2", UserID: "user-1", SubmittedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("SaveDispute failed: %v", err)
	}

	if err := s.UpdateStatus(ctx, "d1", models.DisputeInProgress); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, err := s.GetDispute(ctx, "d1")
	if err != nil {
		t.Fatalf("GetDispute failed: %v", err)
	}
	if got.LastStatus != models.DisputeInProgress {
		t.Errorf("expected in_progress, got %s", got.LastStatus)
	}

	if err := s.UpdateStatus(ctx, "untracked", models.DisputeResolved); err != nil {
		t.Errorf("expected untracked dispute to be ignored, got %v", err)
	}

	list, err := s.ListDisputes(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListDisputes failed: %v", err)
	}
	if len(list) != 2 || list[0].DisputeID != "d2" {
		t.Errorf("expected newest dispute first, got %+v", list)
	}
}

func TestMonitoringStorage(t *testing.T) {
	s := setupTestManager(t).MonitoringStorage()
	ctx := context.Background()

	h := &models.MonitoringHandle{ID: "enr_user-1", UserID: "user-1", Provider: "array", Status: "active"}
	if err := s.SaveHandle(ctx, h); err != nil {
		t.Fatalf("SaveHandle failed: %v", err)
	}

	got, err := s.GetHandle(ctx, "enr_user-1")
	if err != nil {
		t.Fatalf("GetHandle failed: %v", err)
	}
	if got.Status != "active" {
		t.Errorf("expected active, got %s", got.Status)
	}

	list, err := s.ListHandles(ctx, "user-1")
	if err != nil || len(list) != 1 {
		t.Errorf("expected one handle, got %d (%v)", len(list), err)
	}

	if _, err := s.GetHandle(ctx, "missing"); !isNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestNewManager_InMemory(t *testing.T) {
	m, err := NewManager(nil, &config.BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open in-memory DB: %v", err)
	}
	defer m.Close()

	ctx := context.Background()
	report := &models.CreditReport{ID: "r-mem", UserID: "user-1", Bureau: models.BureauExperian}
	if err := m.ReportStorage().SaveReport(ctx, report); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	got, err := m.ReportStorage().GetReport(ctx, "r-mem")
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if got.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", got.UserID)
	}
}

func TestNewManager_RequiresPath(t *testing.T) {
	if _, err := NewManager(nil, &config.BadgerConfig{}); err == nil {
		t.Fatal("expected an error when neither path nor in_memory is set")
	}
}

func TestReportStorage_SaveReportNeverReplaces(t *testing.T) {
	s := setupTestManager(t).ReportStorage()
	ctx := context.Background()

	if err := s.SaveReport(ctx, &models.CreditReport{ID: "r-1", UserID: "original"}); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	err := s.SaveReport(ctx, &models.CreditReport{ID: "r-1", UserID: "replacement"})
	if !errors.Is(err, ErrReportExists) {
		t.Fatalf("expected ErrReportExists, got %v", err)
	}

	got, err := s.GetReport(ctx, "r-1")
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if got.UserID != "original" {
		t.Errorf("stored report was replaced: %+v", got)
	}
}

func TestReportStorage_RepeatedPullKeepsEarlierReports(t *testing.T) {
	s := setupTestManager(t).ReportStorage()
	ctx := context.Background()

	req, first := testPull()
	if _, err := s.SavePull(ctx, req, "array", "direct", first); err != nil {
		t.Fatalf("first SavePull failed: %v", err)
	}

	_, second := testPull()
	second.Reports[1].Accounts[0].CreditorName = "Chase Bank"
	record, err := s.SavePull(ctx, req, "array", "direct", second)
	if err != nil {
		t.Fatalf("second SavePull failed: %v", err)
	}
	for i, id := range record.ReportIDs {
		if id == "r-old" || id == "r-new" {
			t.Errorf("second pull reused stored id %s", id)
		}
		if second.Reports[i].ID != id {
			t.Errorf("response id %s does not match stored id %s", second.Reports[i].ID, id)
		}
	}

	earlier, err := s.GetReport(ctx, "r-new")
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if earlier.Accounts[0].CreditorName != "Chase" {
		t.Errorf("earlier report was mutated: %+v", earlier.Accounts[0])
	}

	reports, err := s.ListReports(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 4 {
		t.Errorf("expected 4 stored reports across two pulls, got %d", len(reports))
	}
}
