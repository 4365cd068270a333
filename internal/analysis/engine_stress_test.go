package analysis

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bobmcallan/vire-credit/internal/models"
)

// =============================================================================
// Engine Stress Tests
// =============================================================================

// --- Concurrent analysis of one shared report ---

func TestAnalyze_StressConcurrentSharedReport(t *testing.T) {
	engine := newTestEngine()
	report := richReport()
	baseline := engine.Analyze(report)

	const goroutines = 50
	const iterations = 20

	var mismatches atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				got := engine.Analyze(report)
				if !reflect.DeepEqual(got, baseline) {
					mismatches.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if n := mismatches.Load(); n != 0 {
		t.Errorf("%d of %d concurrent analyses differed from the baseline", n, goroutines*iterations)
	}

	// The shared report must come through untouched.
	if !reflect.DeepEqual(report, richReport()) {
		t.Error("concurrent analysis mutated the shared report")
	}
}

// --- Concurrent mutation of returned analyses ---

func TestAnalyze_StressResultsAreIndependent(t *testing.T) {
	engine := newTestEngine()
	report := richReport()

	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			a := engine.Analyze(report)
			for i := range a.Recommendations {
				a.Recommendations[i].Title = fmt.Sprintf("scribbled-%d", n)
				for j := range a.Recommendations[i].ActionSteps {
					a.Recommendations[i].ActionSteps[j] = "scribbled"
				}
			}
		}(g)
	}
	wg.Wait()

	fresh := engine.Analyze(report)
	for _, rec := range fresh.Recommendations {
		for _, step := range rec.ActionSteps {
			if step == "scribbled" {
				t.Fatalf("recommendation templates were shared across analyses: %+v", rec)
			}
		}
	}
}

// --- Hostile numeric input ---

func TestAnalyze_StressHostileNumbers(t *testing.T) {
	engine := newTestEngine()

	values := []float64{0, -1, 1e-300, 1e300, math.MaxFloat64, math.Inf(1), math.Inf(-1), math.NaN()}
	for _, balance := range values {
		for _, limit := range values {
			r := baseReport()
			r.Accounts = []models.TradelineAccount{
				{ID: "a1", AccountType: models.AccountTypeCreditCard, CreditLimit: limit, CurrentBalance: balance,
					PaymentStatus: models.PaymentCurrent, DateOpened: date(2015, 1, 1)},
			}

			a := engine.Analyze(r)
			for _, issue := range a.Issues {
				if issue.PotentialScoreImpact < 0 || issue.PotentialScoreImpact > 150 {
					t.Errorf("balance=%v limit=%v: issue %q impact %d out of range", balance, limit, issue.Title, issue.PotentialScoreImpact)
				}
			}
			if c := a.ScoreBreakdown.Composite(); c < 0 || c > 100 {
				t.Errorf("balance=%v limit=%v: composite %d out of range", balance, limit, c)
			}
		}
	}
}
