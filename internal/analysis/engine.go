// Package analysis derives a CreditAnalysis from one CreditReport: a five
// factor score breakdown, issues, dispute opportunities and recommendations.
// Analysis is pure and deterministic for a given report; only AnalyzedAt
// depends on the clock.
package analysis

import (
	"math"
	"time"

	"github.com/bobmcallan/vire-credit/internal/models"
)

const hoursPerYear = 24 * 365.25

// Engine analyzes credit reports under a Policy. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	policy Policy
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for AnalyzedAt and for reports without a pull date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine for the given policy.
func NewEngine(policy Policy, opts ...Option) *Engine {
	e := &Engine{
		policy: policy,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Analyze derives a CreditAnalysis from report. Ages and look-back windows are
// measured from the report's pull date so re-analysis of a stored report gives
// the same result.
func (e *Engine) Analyze(report models.CreditReport) *models.CreditAnalysis {
	analyzedAt := e.now().UTC()
	asOf := report.PullDate
	if asOf.IsZero() {
		asOf = analyzedAt
	}

	issues := e.detectIssues(report, asOf)
	return &models.CreditAnalysis{
		ReportID:             report.ID,
		AnalyzedAt:           analyzedAt,
		OverallHealth:        e.health(report.Score.Score),
		ScoreBreakdown:       e.breakdown(report, asOf),
		Issues:               issues,
		Recommendations:      e.recommend(report, issues),
		DisputeOpportunities: e.findOpportunities(report, asOf),
	}
}

func (e *Engine) health(score int) models.OverallHealth {
	switch {
	case score >= e.policy.HealthExcellent:
		return models.HealthExcellent
	case score >= e.policy.HealthGood:
		return models.HealthGood
	case score >= e.policy.HealthFair:
		return models.HealthFair
	case score >= e.policy.HealthPoor:
		return models.HealthPoor
	}
	return models.HealthVeryPoor
}

func (e *Engine) breakdown(report models.CreditReport, asOf time.Time) models.ScoreBreakdown {
	p := e.policy

	late := 0
	for _, a := range report.Accounts {
		if isLate(a) {
			late++
		}
	}

	oldest := oldestOpened(report.Accounts)
	age := 0.0
	if oldest != nil {
		age = yearsBetween(*oldest, asOf) * p.AgePointsPerYear
	}

	return models.ScoreBreakdown{
		PaymentHistory:    clamp(100 - float64(p.LatePaymentPenalty*late)),
		CreditUtilization: clamp(100 - aggregateUtilization(report.Accounts)*p.UtilizationMultiplier),
		CreditAge:         clamp(age),
		CreditMix:         clamp(float64(p.MixPointsPerType * distinctTypes(report.Accounts))),
		NewCredit:         clamp(100 - float64(p.InquiryPenalty*e.recentHardInquiries(report.Inquiries, asOf))),
	}
}

func (e *Engine) recentHardInquiries(inquiries []models.CreditInquiry, asOf time.Time) int {
	cutoff := asOf.AddDate(0, -e.policy.InquiryWindowMonths, 0)
	n := 0
	for _, q := range inquiries {
		if q.Type != models.InquiryHard || q.Date.IsZero() {
			continue
		}
		if !q.Date.Before(cutoff) && !q.Date.After(asOf) {
			n++
		}
	}
	return n
}

func isLate(a models.TradelineAccount) bool {
	return a.PaymentStatus != "" && a.PaymentStatus != models.PaymentCurrent
}

// aggregateUtilization returns total revolving balance over total revolving
// limit as a percentage, or 0 without limit data.
func aggregateUtilization(accounts []models.TradelineAccount) float64 {
	var balance, limit float64
	for _, a := range accounts {
		if !a.AccountType.IsRevolving() {
			continue
		}
		balance += a.CurrentBalance
		limit += a.CreditLimit
	}
	if limit <= 0 {
		return 0
	}
	return balance / limit * 100
}

func oldestOpened(accounts []models.TradelineAccount) *time.Time {
	var oldest *time.Time
	for _, a := range accounts {
		if a.DateOpened == nil {
			continue
		}
		if oldest == nil || a.DateOpened.Before(*oldest) {
			oldest = a.DateOpened
		}
	}
	return oldest
}

func distinctTypes(accounts []models.TradelineAccount) int {
	seen := make(map[models.AccountType]bool)
	for _, a := range accounts {
		seen[a.AccountType] = true
	}
	return len(seen)
}

func yearsBetween(from, to time.Time) float64 {
	if to.Before(from) {
		return 0
	}
	return to.Sub(from).Hours() / hoursPerYear
}

// clamp rounds v to the nearest integer within [0,100].
func clamp(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
