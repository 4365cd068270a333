package models

import "time"

// OverallHealth bands a bureau score.
type OverallHealth string

const (
	HealthExcellent OverallHealth = "excellent"
	HealthGood      OverallHealth = "good"
	HealthFair      OverallHealth = "fair"
	HealthPoor      OverallHealth = "poor"
	HealthVeryPoor  OverallHealth = "very_poor"
)

// ScoreBreakdown holds the five factor scores, each in [0,100].
type ScoreBreakdown struct {
	PaymentHistory    int `json:"payment_history"`
	CreditUtilization int `json:"credit_utilization"`
	CreditAge         int `json:"credit_age"`
	CreditMix         int `json:"credit_mix"`
	NewCredit         int `json:"new_credit"`
}

// Composite returns the FICO-style weighted average of the five factors
// (35/30/15/10/10), rounded to the nearest integer.
func (b ScoreBreakdown) Composite() int {
	sum := 35*b.PaymentHistory + 30*b.CreditUtilization + 15*b.CreditAge + 10*b.CreditMix + 10*b.NewCredit
	return (sum + 50) / 100
}

// IssueType names the rule that raised a CreditIssue.
type IssueType string

const (
	IssueLatePayment     IssueType = "late_payment"
	IssueHighUtilization IssueType = "high_utilization"
	IssueCollection      IssueType = "collection"
	IssuePublicRecord    IssueType = "public_record"
	IssueExcessInquiries IssueType = "excess_inquiries"
)

// Severity grades a CreditIssue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// CreditIssue is a reportable problem found on a report.
type CreditIssue struct {
	ID                   string    `json:"id"`
	Type                 IssueType `json:"type"`
	Severity             Severity  `json:"severity"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	ItemID               string    `json:"item_id,omitempty"`
	Bureau               Bureau    `json:"bureau"`
	PotentialScoreImpact int       `json:"potential_score_impact"`
}

// Confidence grades how likely a dispute opportunity is to succeed.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Rank orders confidences high < medium < low. Unknown values sort last.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 0
	case ConfidenceMedium:
		return 1
	case ConfidenceLow:
		return 2
	}
	return 3
}

// DisputeOpportunity is a heuristically identified candidate for a dispute.
type DisputeOpportunity struct {
	ID          string        `json:"id"`
	ItemType    string        `json:"item_type"` // tradeline | collection
	ItemID      string        `json:"item_id"`
	Creditor    string        `json:"creditor"`
	Bureau      Bureau        `json:"bureau"`
	Reason      DisputeReason `json:"reason"`
	Confidence  Confidence    `json:"confidence"`
	Explanation string        `json:"explanation"`
}

// RecommendationCategory names the family a recommendation belongs to.
type RecommendationCategory string

const (
	RecommendUtilization RecommendationCategory = "utilization"
	RecommendCollections RecommendationCategory = "collections"
	RecommendGoodwill    RecommendationCategory = "goodwill"
	RecommendCreditMix   RecommendationCategory = "credit_mix"
)

// ScoreRange is an estimated score change in points.
type ScoreRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Recommendation is a prioritized, fixed action plan.
type Recommendation struct {
	ID              string                 `json:"id"`
	Category        RecommendationCategory `json:"category"`
	Priority        ImpactLevel            `json:"priority"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	ActionSteps     []string               `json:"action_steps"`
	EstimatedImpact ScoreRange             `json:"estimated_impact"`
	Timeframe       string                 `json:"timeframe"`
}

// CreditAnalysis is derived from one CreditReport and never mutated afterwards.
type CreditAnalysis struct {
	ReportID             string               `json:"report_id" badgerhold:"key"`
	AnalyzedAt           time.Time            `json:"analyzed_at"`
	OverallHealth        OverallHealth        `json:"overall_health"`
	ScoreBreakdown       ScoreBreakdown       `json:"score_breakdown"`
	Issues               []CreditIssue        `json:"issues"`
	Recommendations      []Recommendation     `json:"recommendations"`
	DisputeOpportunities []DisputeOpportunity `json:"dispute_opportunities"`
}
