package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bobmcallan/vire-credit/internal/models"
)

func (e *Engine) detectIssues(report models.CreditReport, asOf time.Time) []models.CreditIssue {
	p := e.policy
	issues := make([]models.CreditIssue, 0)

	add := func(issue models.CreditIssue) {
		issue.Bureau = report.Bureau
		issue.ID = issueID(issue.Type, issue.ItemID, len(issues))
		issues = append(issues, issue)
	}

	for _, a := range report.Accounts {
		if !isLate(a) {
			continue
		}
		days := delinquencyDays(string(a.PaymentStatus))
		add(models.CreditIssue{
			Type:                 models.IssueLatePayment,
			Severity:             lateSeverity(days),
			Title:                "Late payment on " + a.CreditorName,
			Description:          fmt.Sprintf("%s is reported as %s.", displayAccount(a), a.PaymentStatus),
			ItemID:               a.ID,
			PotentialScoreImpact: lateImpact(days),
		})
	}

	for _, a := range report.Accounts {
		if !a.AccountType.IsRevolving() || a.CreditLimit <= 0 {
			continue
		}
		util := a.CurrentBalance / a.CreditLimit * 100
		if math.IsNaN(util) || util <= p.UtilizationIssuePercent {
			continue
		}
		severity := models.SeverityMinor
		if util > p.UtilizationMajorPercent {
			severity = models.SeverityMajor
		}
		// Balances past the limit score as fully utilized.
		impact := int(math.Round(math.Min(util, 100) - p.UtilizationIssuePercent))
		if p.UtilizationImpactCap > 0 && impact > p.UtilizationImpactCap {
			impact = p.UtilizationImpactCap
		}
		add(models.CreditIssue{
			Type:     models.IssueHighUtilization,
			Severity: severity,
			Title:    "High utilization on " + a.CreditorName,
			Description: fmt.Sprintf("%s is %.0f%% utilized ($%.2f of $%.2f).",
				displayAccount(a), util, a.CurrentBalance, a.CreditLimit),
			ItemID:               a.ID,
			PotentialScoreImpact: impact,
		})
	}

	for _, c := range report.Collections {
		if c.Status != models.CollectionOpen {
			continue
		}
		add(models.CreditIssue{
			Type:                 models.IssueCollection,
			Severity:             models.SeverityCritical,
			Title:                "Open collection with " + c.CollectorName,
			Description:          fmt.Sprintf("%s reports an open collection balance of $%.2f.", c.CollectorName, c.CurrentBalance),
			ItemID:               c.ID,
			PotentialScoreImpact: p.CollectionImpact,
		})
	}

	for _, r := range report.PublicRecords {
		if r.Status != models.PublicRecordActive {
			continue
		}
		add(models.CreditIssue{
			Type:                 models.IssuePublicRecord,
			Severity:             models.SeverityCritical,
			Title:                "Active public record: " + string(r.Type),
			Description:          publicRecordDescription(r),
			ItemID:               r.ID,
			PotentialScoreImpact: p.PublicRecordImpact,
		})
	}

	if n := e.recentHardInquiries(report.Inquiries, asOf); n > p.InquiryThreshold {
		add(models.CreditIssue{
			Type:     models.IssueExcessInquiries,
			Severity: models.SeverityMinor,
			Title:    "Too many recent hard inquiries",
			Description: fmt.Sprintf("%d hard inquiries in the last %d months; more than %d weighs on new credit.",
				n, p.InquiryWindowMonths, p.InquiryThreshold),
			PotentialScoreImpact: (n - p.InquiryThreshold) * p.InquiryImpactPerExtra,
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].PotentialScoreImpact > issues[j].PotentialScoreImpact
	})
	return issues
}

// delinquencyDays returns the largest day count named in a payment status,
// e.g. "120_days_late" -> 120. Statuses without a number return 0.
func delinquencyDays(status string) int {
	highest, cur := 0, 0
	for _, r := range status + " " {
		if r >= '0' && r <= '9' {
			cur = cur*10 + int(r-'0')
			continue
		}
		if cur > highest {
			highest = cur
		}
		cur = 0
	}
	return highest
}

func lateSeverity(days int) models.Severity {
	switch {
	case days >= 90:
		return models.SeverityCritical
	case days >= 60:
		return models.SeverityMajor
	}
	return models.SeverityMinor
}

func issueID(t models.IssueType, itemID string, seq int) string {
	if itemID == "" {
		return fmt.Sprintf("%s-%d", t, seq)
	}
	return string(t) + "-" + itemID
}

func displayAccount(a models.TradelineAccount) string {
	if a.AccountNumber == "" {
		return a.CreditorName
	}
	return a.CreditorName + " " + a.AccountNumber
}

func publicRecordDescription(r models.PublicRecord) string {
	desc := fmt.Sprintf("A %s", r.Type)
	if r.FilingDate != nil {
		desc += " filed " + r.FilingDate.Format("2006-01-02")
	}
	if r.Court != "" {
		desc += " in " + r.Court
	}
	if r.Amount != nil {
		desc += fmt.Sprintf(" for $%.2f", *r.Amount)
	}
	return desc + " is still active."
}
