package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/bobmcallan/vire-credit/internal/models"
)

const (
	itemTradeline  = "tradeline"
	itemCollection = "collection"
)

func (e *Engine) findOpportunities(report models.CreditReport, asOf time.Time) []models.DisputeOpportunity {
	p := e.policy
	opps := make([]models.DisputeOpportunity, 0)

	add := func(o models.DisputeOpportunity) {
		o.Bureau = report.Bureau
		o.ID = fmt.Sprintf("opp-%s-%s-%s", o.ItemType, o.ItemID, o.Reason)
		opps = append(opps, o)
	}

	for _, a := range report.Accounts {
		if !isLate(a) || a.DateLastActive == nil {
			continue
		}
		if age := yearsBetween(*a.DateLastActive, asOf); age > p.StaleTradelineYears {
			add(models.DisputeOpportunity{
				ItemType:   itemTradeline,
				ItemID:     a.ID,
				Creditor:   a.CreditorName,
				Reason:     models.ReasonOutdatedInformation,
				Confidence: models.ConfidenceHigh,
				Explanation: fmt.Sprintf("Negative item last active %s (%.1f years ago) is past the %.1f-year reporting period.",
					a.DateLastActive.Format("2006-01-02"), age, p.StaleTradelineYears),
			})
		}
	}

	for _, c := range report.Collections {
		if c.Status == models.CollectionDeleted {
			continue
		}
		if c.OriginalCreditor == "" {
			add(models.DisputeOpportunity{
				ItemType:    itemCollection,
				ItemID:      c.ID,
				Creditor:    c.CollectorName,
				Reason:      models.ReasonNotMyAccount,
				Confidence:  models.ConfidenceMedium,
				Explanation: "No original creditor is recorded; the collector may be unable to validate the debt.",
			})
		}
		if opened := collectionDate(c); opened != nil {
			if age := yearsBetween(*opened, asOf); age > p.StaleCollectionYears {
				add(models.DisputeOpportunity{
					ItemType:   itemCollection,
					ItemID:     c.ID,
					Creditor:   c.CollectorName,
					Reason:     models.ReasonOutdatedInformation,
					Confidence: models.ConfidenceHigh,
					Explanation: fmt.Sprintf("Collection opened %s (%.1f years ago) is older than %.0f years.",
						opened.Format("2006-01-02"), age, p.StaleCollectionYears),
				})
			}
		}
		if c.Status == models.CollectionPaid && c.CurrentBalance == 0 {
			add(models.DisputeOpportunity{
				ItemType:    itemCollection,
				ItemID:      c.ID,
				Creditor:    c.CollectorName,
				Reason:      models.ReasonAccountPaid,
				Confidence:  models.ConfidenceHigh,
				Explanation: "Collection is paid in full with a zero balance.",
			})
		}
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].Confidence.Rank() < opps[j].Confidence.Rank()
	})
	return opps
}

// collectionDate is the open date, or the reported date when the open date is missing.
func collectionDate(c models.CollectionAccount) *time.Time {
	if c.DateOpened != nil {
		return c.DateOpened
	}
	return c.DateReported
}
