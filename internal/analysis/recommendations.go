package analysis

import (
	"sort"

	"github.com/bobmcallan/vire-credit/internal/models"
)

var recommendationTemplates = map[models.RecommendationCategory]models.Recommendation{
	models.RecommendUtilization: {
		Category:    models.RecommendUtilization,
		Priority:    models.ImpactHigh,
		Title:       "Pay down revolving balances",
		Description: "Revolving balances are high relative to limits. Bringing each card under 30% utilization is the fastest lever on your score.",
		ActionSteps: []string{
			"Pay down the cards with the highest utilization first",
			"Make a payment before the statement closing date",
			"Ask for a credit limit increase on accounts in good standing",
			"Avoid closing paid-off cards",
		},
		EstimatedImpact: models.ScoreRange{Min: 20, Max: 50},
		Timeframe:       "1-2 months",
	},
	models.RecommendCollections: {
		Category:    models.RecommendCollections,
		Priority:    models.ImpactHigh,
		Title:       "Dispute or resolve collection accounts",
		Description: "Open collections weigh heavily on your score. Validate each debt and dispute anything inaccurate.",
		ActionSteps: []string{
			"Send a debt validation letter to each collector",
			"Dispute collections that cannot be validated",
			"Negotiate pay-for-delete on valid debts",
			"Keep written records of every agreement",
		},
		EstimatedImpact: models.ScoreRange{Min: 25, Max: 100},
		Timeframe:       "30-90 days",
	},
	models.RecommendGoodwill: {
		Category:    models.RecommendGoodwill,
		Priority:    models.ImpactMedium,
		Title:       "Request goodwill adjustments",
		Description: "Creditors sometimes remove isolated late payments for customers with an otherwise good record.",
		ActionSteps: []string{
			"Write a goodwill letter to each creditor reporting a late payment",
			"Explain the circumstances and your payment record since",
			"Set up autopay to prevent further late payments",
		},
		EstimatedImpact: models.ScoreRange{Min: 10, Max: 40},
		Timeframe:       "1-3 months",
	},
	models.RecommendCreditMix: {
		Category:    models.RecommendCreditMix,
		Priority:    models.ImpactLow,
		Title:       "Diversify your credit mix",
		Description: "A mix of revolving and installment credit shows you can manage different kinds of debt.",
		ActionSteps: []string{
			"Consider a credit-builder loan if you have no installment accounts",
			"Only open new accounts you need",
			"Space out applications to limit hard inquiries",
		},
		EstimatedImpact: models.ScoreRange{Min: 5, Max: 20},
		Timeframe:       "6-12 months",
	},
}

var priorityRank = map[models.ImpactLevel]int{
	models.ImpactHigh:   0,
	models.ImpactMedium: 1,
	models.ImpactLow:    2,
}

func (e *Engine) recommend(report models.CreditReport, issues []models.CreditIssue) []models.Recommendation {
	found := make(map[models.IssueType]bool)
	for _, issue := range issues {
		found[issue.Type] = true
	}

	var categories []models.RecommendationCategory
	if found[models.IssueHighUtilization] {
		categories = append(categories, models.RecommendUtilization)
	}
	if found[models.IssueCollection] {
		categories = append(categories, models.RecommendCollections)
	}
	if found[models.IssueLatePayment] {
		categories = append(categories, models.RecommendGoodwill)
	}
	if distinctTypes(report.Accounts) < e.policy.MinAccountTypes {
		categories = append(categories, models.RecommendCreditMix)
	}

	recs := make([]models.Recommendation, 0, len(categories))
	for _, c := range categories {
		rec := recommendationTemplates[c]
		rec.ID = "rec-" + string(c)
		rec.ActionSteps = append([]string(nil), rec.ActionSteps...)
		recs = append(recs, rec)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
	})
	return recs
}
