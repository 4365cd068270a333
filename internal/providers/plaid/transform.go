package plaid

import (
	"strings"

	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
	"github.com/google/uuid"
)

var accountKinds = map[string]models.AccountType{
	"revolving":      models.AccountTypeRevolving,
	"installment":    models.AccountTypeInstallment,
	"mortgage":       models.AccountTypeMortgage,
	"auto":           models.AccountTypeAuto,
	"student":        models.AccountTypeStudent,
	"personal":       models.AccountTypePersonal,
	"credit card":    models.AccountTypeCreditCard,
	"credit_card":    models.AccountTypeCreditCard,
	"retail":         models.AccountTypeRetail,
	"heloc":          models.AccountTypeLineOfCredit,
	"line of credit": models.AccountTypeLineOfCredit,
	"collection":     models.AccountTypeCollection,
}

var accountStates = map[string]models.AccountStatus{
	"open":        models.AccountStatusOpen,
	"closed":      models.AccountStatusClosed,
	"paid":        models.AccountStatusPaid,
	"transferred": models.AccountStatusTransferred,
}

var paymentRatings = map[string]models.PaymentStatus{
	"current":      models.PaymentCurrent,
	"ok":           models.PaymentCurrent,
	"30":           models.PaymentLate30,
	"60":           models.PaymentLate60,
	"90":           models.PaymentLate90,
	"120":          models.PaymentLate120,
	"150":          models.PaymentLate150,
	"180":          models.PaymentLate180,
	"collection":   models.PaymentCollection,
	"charge_off":   models.PaymentChargeOff,
	"chargeoff":    models.PaymentChargeOff,
	"foreclosure":  models.PaymentForeclosure,
	"repossession": models.PaymentRepossession,
}

var ownerships = map[string]models.ResponsibilityType{
	"individual":      models.ResponsibilityIndividual,
	"joint":           models.ResponsibilityJoint,
	"authorized_user": models.ResponsibilityAuthorizedUser,
	"cosigner":        models.ResponsibilityCosigner,
}

var recordTypes = map[string]models.PublicRecordType{
	"bankruptcy":     models.PublicRecordBankruptcy,
	"tax_lien":       models.PublicRecordTaxLien,
	"civil_judgment": models.PublicRecordCivilJudgment,
	"judgment":       models.PublicRecordCivilJudgment,
	"foreclosure":    models.PublicRecordForeclosure,
}

var recordStatuses = map[string]models.PublicRecordStatus{
	"active":    models.PublicRecordActive,
	"released":  models.PublicRecordReleased,
	"satisfied": models.PublicRecordReleased,
	"dismissed": models.PublicRecordDismissed,
}

var collectionStatuses = map[string]models.CollectionStatus{
	"open":    models.CollectionOpen,
	"paid":    models.CollectionPaid,
	"settled": models.CollectionSettled,
	"deleted": models.CollectionDeleted,
}

var disputeStates = map[string]models.DisputeStatus{
	"pending":     models.DisputePending,
	"received":    models.DisputePending,
	"processing":  models.DisputeInProgress,
	"in_progress": models.DisputeInProgress,
	"complete":    models.DisputeResolved,
	"resolved":    models.DisputeResolved,
}

var disputeResults = map[string]models.DisputeResolution{
	"verified": models.ResolutionVerified,
	"modified": models.ResolutionUpdated,
	"updated":  models.ResolutionUpdated,
	"removed":  models.ResolutionDeleted,
	"deleted":  models.ResolutionDeleted,
}

func code(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func mapAccountKind(c string) models.AccountType {
	if t, ok := accountKinds[code(c)]; ok {
		return t
	}
	return models.AccountTypeOther
}

func mapAccountState(c string) models.AccountStatus {
	if s, ok := accountStates[code(c)]; ok {
		return s
	}
	return models.AccountStatusUnknown
}

// mapPaymentRating maps a rating; unknown ratings are treated as current.
func mapPaymentRating(c string) models.PaymentStatus {
	if s, ok := paymentRatings[code(c)]; ok {
		return s
	}
	return models.PaymentCurrent
}

func mapOwnership(c string) models.ResponsibilityType {
	if r, ok := ownerships[code(c)]; ok {
		return r
	}
	return models.ResponsibilityOther
}

func mapInquiryKind(c string) models.InquiryType {
	if code(c) == "soft" {
		return models.InquirySoft
	}
	return models.InquiryHard
}

func mapRecordType(c string) models.PublicRecordType {
	if t, ok := recordTypes[code(c)]; ok {
		return t
	}
	return models.PublicRecordOther
}

func mapRecordStatus(c string) models.PublicRecordStatus {
	if s, ok := recordStatuses[code(c)]; ok {
		return s
	}
	return models.PublicRecordUnknown
}

func mapCollectionStatus(c string) models.CollectionStatus {
	if s, ok := collectionStatuses[code(c)]; ok {
		return s
	}
	return models.CollectionOpen
}

func mapDisputeState(c string) models.DisputeStatus {
	if s, ok := disputeStates[code(c)]; ok {
		return s
	}
	return models.DisputePending
}

func transformReport(userID string, r wireReport) models.CreditReport {
	id := strings.TrimSpace(r.ReportID)
	if id == "" {
		id = uuid.NewString()
	}
	bureau, _ := providers.ParseBureau(r.Bureau)

	report := models.CreditReport{
		ID:            id,
		UserID:        userID,
		Bureau:        bureau,
		PullDate:      providers.ParseTime(r.GeneratedAt),
		Score:         transformScore(bureau, r.Score),
		PersonalInfo:  transformIdentity(r.Identity),
		Accounts:      make([]models.TradelineAccount, 0, len(r.Accounts)),
		Inquiries:     make([]models.CreditInquiry, 0, len(r.Inquiries)),
		PublicRecords: make([]models.PublicRecord, 0, len(r.PublicRecords)),
		Collections:   make([]models.CollectionAccount, 0, len(r.Collections)),
	}
	for _, a := range r.Accounts {
		report.Accounts = append(report.Accounts, transformAccount(a))
	}
	for _, q := range r.Inquiries {
		report.Inquiries = append(report.Inquiries, models.CreditInquiry{
			ID:           q.InquiryID,
			CreditorName: q.Requester,
			Date:         providers.ParseTime(q.Date),
			Type:         mapInquiryKind(q.Kind),
			Purpose:      q.Reason,
		})
	}
	for _, p := range r.PublicRecords {
		report.PublicRecords = append(report.PublicRecords, models.PublicRecord{
			ID:               p.RecordID,
			Type:             mapRecordType(p.RecordType),
			FilingDate:       providers.ParseDate(p.FiledDate),
			SatisfactionDate: providers.ParseDate(p.SatisfiedDate),
			Status:           mapRecordStatus(p.Status),
			Amount:           p.Amount,
			Court:            p.CourtName,
			CaseNumber:       p.Docket,
		})
	}
	for _, c := range r.Collections {
		report.Collections = append(report.Collections, models.CollectionAccount{
			ID:               c.CollectionID,
			CollectorName:    c.AgencyName,
			OriginalCreditor: strings.TrimSpace(c.OriginalCreditor),
			AccountNumber:    c.Mask,
			DateOpened:       providers.ParseDate(c.OpenedDate),
			DateReported:     providers.ParseDate(c.ReportedDate),
			OriginalBalance:  providers.NonNegative(c.OriginalAmount),
			CurrentBalance:   providers.NonNegative(c.Balance),
			Status:           mapCollectionStatus(c.Status),
		})
	}
	return report
}

func transformScore(bureau models.Bureau, s wireScore) models.CreditScore {
	score := models.CreditScore{
		Bureau:      bureau,
		Score:       s.Score,
		Model:       s.ModelName,
		GeneratedAt: providers.ParseTime(s.AsOf),
		Factors:     make([]models.ScoreFactor, 0, len(s.ReasonCodes)),
	}
	for _, rc := range s.ReasonCodes {
		score.Factors = append(score.Factors, models.ScoreFactor{
			Code:        rc.Code,
			Description: rc.Description,
			Impact:      providers.MapFactorImpact(rc.Weight),
		})
	}
	return score
}

func transformIdentity(id wireIdentity) models.PersonalInfo {
	info := models.PersonalInfo{
		Name:        id.FullName,
		AlsoKnownAs: id.Aliases,
		DateOfBirth: providers.ParseDate(id.DateOfBirth),
		Employers:   id.Employers,
	}
	for _, a := range id.Addresses {
		info.Addresses = append(info.Addresses, models.Address{
			Street: a.Line1,
			City:   a.City,
			State:  a.Region,
			Zip:    a.PostalCode,
		})
	}
	return info
}

func transformAccount(a wireAccount) models.TradelineAccount {
	opened := providers.ParseDate(a.OpenedDate)
	account := models.TradelineAccount{
		ID:                 a.AccountID,
		CreditorName:       a.InstitutionName,
		AccountNumber:      maskAccount(a.Mask),
		AccountType:        mapAccountKind(a.Kind),
		AccountStatus:      mapAccountState(a.State),
		DateOpened:         opened,
		DateClosed:         providers.ClosedAfterOpened(opened, providers.ParseDate(a.ClosedDate)),
		DateLastActive:     providers.ParseDate(a.LastActivityDate),
		CreditLimit:        providers.NonNegative(a.Limit),
		HighBalance:        providers.NonNegative(a.HighestBalance),
		CurrentBalance:     providers.NonNegative(a.Balance),
		MonthlyPayment:     providers.NonNegative(a.PaymentAmount),
		PaymentStatus:      mapPaymentRating(a.PaymentRating),
		PaymentHistory:     make([]models.PaymentHistoryEntry, 0, len(a.History)),
		ResponsibilityType: mapOwnership(a.Ownership),
		Remarks:            a.Comments,
	}
	for _, h := range a.History {
		account.PaymentHistory = append(account.PaymentHistory, models.PaymentHistoryEntry{
			Month:  h.Period,
			Status: mapPaymentRating(h.Rating),
		})
	}
	if strings.TrimSpace(a.DisputeState) != "" {
		ds := mapDisputeState(a.DisputeState)
		account.DisputeStatus = &ds
	}
	return account
}

// maskAccount renders the provider's last-four mask in the canonical XXXX form.
func maskAccount(mask string) string {
	mask = strings.TrimSpace(mask)
	if mask == "" || strings.HasPrefix(mask, "X") {
		return mask
	}
	return "XXXX" + mask
}

func transformDispute(id string, d wireDispute) models.DisputeStatusView {
	view := models.DisputeStatusView{
		DisputeID: id,
		Status:    mapDisputeState(d.Status),
		UpdatedAt: providers.ParseTime(d.LastUpdated),
	}
	if view.Status == models.DisputeResolved {
		if r, ok := disputeResults[code(d.Result)]; ok {
			view.Resolution = r
		} else {
			view.Resolution = models.ResolutionVerified
		}
	}
	return view
}
