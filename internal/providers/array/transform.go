package array

import (
	"strings"

	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
	"github.com/google/uuid"
)

var accountTypes = map[string]models.AccountType{
	"REVOLVING":   models.AccountTypeRevolving,
	"INSTALLMENT": models.AccountTypeInstallment,
	"MORTGAGE":    models.AccountTypeMortgage,
	"AUTO":        models.AccountTypeAuto,
	"STUDENT":     models.AccountTypeStudent,
	"PERSONAL":    models.AccountTypePersonal,
	"CREDIT_CARD": models.AccountTypeCreditCard,
	"RETAIL":      models.AccountTypeRetail,
	"LOC":         models.AccountTypeLineOfCredit,
	"HELOC":       models.AccountTypeLineOfCredit,
	"COLLECTION":  models.AccountTypeCollection,
}

var accountStatuses = map[string]models.AccountStatus{
	"OPEN":        models.AccountStatusOpen,
	"CLOSED":      models.AccountStatusClosed,
	"PAID":        models.AccountStatusPaid,
	"TRANSFERRED": models.AccountStatusTransferred,
}

var paymentStatuses = map[string]models.PaymentStatus{
	"CURRENT":      models.PaymentCurrent,
	"LATE_30":      models.PaymentLate30,
	"LATE_60":      models.PaymentLate60,
	"LATE_90":      models.PaymentLate90,
	"LATE_120":     models.PaymentLate120,
	"LATE_150":     models.PaymentLate150,
	"LATE_180":     models.PaymentLate180,
	"COLLECTION":   models.PaymentCollection,
	"CHARGE_OFF":   models.PaymentChargeOff,
	"FORECLOSURE":  models.PaymentForeclosure,
	"REPOSSESSION": models.PaymentRepossession,
}

var responsibilities = map[string]models.ResponsibilityType{
	"INDIVIDUAL":      models.ResponsibilityIndividual,
	"JOINT":           models.ResponsibilityJoint,
	"AUTHORIZED_USER": models.ResponsibilityAuthorizedUser,
	"COSIGNER":        models.ResponsibilityCosigner,
}

var publicRecordTypes = map[string]models.PublicRecordType{
	"BANKRUPTCY":     models.PublicRecordBankruptcy,
	"TAX_LIEN":       models.PublicRecordTaxLien,
	"CIVIL_JUDGMENT": models.PublicRecordCivilJudgment,
	"FORECLOSURE":    models.PublicRecordForeclosure,
}

var publicRecordStatuses = map[string]models.PublicRecordStatus{
	"ACTIVE":    models.PublicRecordActive,
	"RELEASED":  models.PublicRecordReleased,
	"DISMISSED": models.PublicRecordDismissed,
}

var collectionStatuses = map[string]models.CollectionStatus{
	"OPEN":    models.CollectionOpen,
	"PAID":    models.CollectionPaid,
	"SETTLED": models.CollectionSettled,
	"DELETED": models.CollectionDeleted,
}

var disputeStatuses = map[string]models.DisputeStatus{
	"PENDING":     models.DisputePending,
	"SUBMITTED":   models.DisputePending,
	"IN_PROGRESS": models.DisputeInProgress,
	"RESOLVED":    models.DisputeResolved,
}

var disputeOutcomes = map[string]models.DisputeResolution{
	"VERIFIED": models.ResolutionVerified,
	"UPDATED":  models.ResolutionUpdated,
	"DELETED":  models.ResolutionDeleted,
}

func code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// bureauCode maps a bureau to the code sent on outgoing requests.
func bureauCode(b models.Bureau) string {
	switch b {
	case models.BureauExperian:
		return "EXP"
	case models.BureauEquifax:
		return "EFX"
	case models.BureauTransUnion:
		return "TUC"
	}
	return strings.ToUpper(string(b))
}

func mapAccountType(c string) models.AccountType {
	if t, ok := accountTypes[code(c)]; ok {
		return t
	}
	return models.AccountTypeOther
}

func mapAccountStatus(c string) models.AccountStatus {
	if s, ok := accountStatuses[code(c)]; ok {
		return s
	}
	return models.AccountStatusUnknown
}

// mapPaymentStatus maps a payment code; unknown codes are treated as current.
func mapPaymentStatus(c string) models.PaymentStatus {
	if s, ok := paymentStatuses[code(c)]; ok {
		return s
	}
	return models.PaymentCurrent
}

func mapResponsibility(c string) models.ResponsibilityType {
	if r, ok := responsibilities[code(c)]; ok {
		return r
	}
	return models.ResponsibilityOther
}

// mapInquiryType maps an inquiry code; anything not explicitly soft counts as hard.
func mapInquiryType(c string) models.InquiryType {
	if code(c) == "SOFT" {
		return models.InquirySoft
	}
	return models.InquiryHard
}

func mapPublicRecordType(c string) models.PublicRecordType {
	if t, ok := publicRecordTypes[code(c)]; ok {
		return t
	}
	return models.PublicRecordOther
}

func mapPublicRecordStatus(c string) models.PublicRecordStatus {
	if s, ok := publicRecordStatuses[code(c)]; ok {
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

func mapDisputeStatus(c string) models.DisputeStatus {
	if s, ok := disputeStatuses[code(c)]; ok {
		return s
	}
	return models.DisputePending
}

// transformReport maps one wire report into the canonical model.
func transformReport(userID string, r wireReport) models.CreditReport {
	id := strings.TrimSpace(r.ReportKey)
	if id == "" {
		id = uuid.NewString()
	}
	bureau, _ := providers.ParseBureau(r.Bureau)

	report := models.CreditReport{
		ID:            id,
		UserID:        userID,
		Bureau:        bureau,
		PullDate:      providers.ParseTime(r.PulledAt),
		Score:         transformScore(bureau, r.Score),
		PersonalInfo:  transformConsumer(r.Consumer),
		Accounts:      make([]models.TradelineAccount, 0, len(r.Tradelines)),
		Inquiries:     make([]models.CreditInquiry, 0, len(r.Inquiries)),
		PublicRecords: make([]models.PublicRecord, 0, len(r.PublicRecords)),
		Collections:   make([]models.CollectionAccount, 0, len(r.Collections)),
	}
	for _, t := range r.Tradelines {
		report.Accounts = append(report.Accounts, transformTradeline(t))
	}
	for _, q := range r.Inquiries {
		report.Inquiries = append(report.Inquiries, transformInquiry(q))
	}
	for _, p := range r.PublicRecords {
		report.PublicRecords = append(report.PublicRecords, transformPublicRecord(p))
	}
	for _, c := range r.Collections {
		report.Collections = append(report.Collections, transformCollection(c))
	}
	return report
}

func transformScore(bureau models.Bureau, s wireScore) models.CreditScore {
	score := models.CreditScore{
		Bureau:      bureau,
		Score:       s.Value,
		Model:       s.Model,
		GeneratedAt: providers.ParseTime(s.Date),
		Factors:     make([]models.ScoreFactor, 0, len(s.Factors)),
	}
	for _, f := range s.Factors {
		score.Factors = append(score.Factors, models.ScoreFactor{
			Code:        f.Code,
			Description: f.Description,
			Impact:      providers.MapFactorImpact(f.Impact),
		})
	}
	return score
}

func transformConsumer(c wireConsumer) models.PersonalInfo {
	info := models.PersonalInfo{
		Name:        c.Name,
		AlsoKnownAs: c.Aliases,
		DateOfBirth: providers.ParseDate(c.DOB),
		Employers:   c.Employers,
	}
	for _, a := range c.Addresses {
		info.Addresses = append(info.Addresses, models.Address(a))
	}
	return info
}

func transformTradeline(t wireTradeline) models.TradelineAccount {
	opened := providers.ParseDate(t.Opened)
	account := models.TradelineAccount{
		ID:                 t.ID,
		CreditorName:       t.Creditor,
		AccountNumber:      t.AccountNumber,
		AccountType:        mapAccountType(t.Type),
		AccountStatus:      mapAccountStatus(t.Status),
		DateOpened:         opened,
		DateClosed:         providers.ClosedAfterOpened(opened, providers.ParseDate(t.Closed)),
		DateLastActive:     providers.ParseDate(t.LastActivity),
		CreditLimit:        providers.NonNegative(t.CreditLimit),
		HighBalance:        providers.NonNegative(t.HighBalance),
		CurrentBalance:     providers.NonNegative(t.Balance),
		MonthlyPayment:     providers.NonNegative(t.MonthlyPayment),
		PaymentStatus:      mapPaymentStatus(t.PaymentStatus),
		PaymentHistory:     make([]models.PaymentHistoryEntry, 0, len(t.History)),
		ResponsibilityType: mapResponsibility(t.Responsibility),
		Remarks:            t.Remarks,
	}
	for _, h := range t.History {
		account.PaymentHistory = append(account.PaymentHistory, models.PaymentHistoryEntry{
			Month:  h.Month,
			Status: mapPaymentStatus(h.Code),
		})
	}
	if strings.TrimSpace(t.DisputeStatus) != "" {
		ds := mapDisputeStatus(t.DisputeStatus)
		account.DisputeStatus = &ds
	}
	return account
}

func transformInquiry(q wireInquiry) models.CreditInquiry {
	return models.CreditInquiry{
		ID:           q.ID,
		CreditorName: q.Creditor,
		Date:         providers.ParseTime(q.Date),
		Type:         mapInquiryType(q.Type),
		Purpose:      q.Purpose,
	}
}

func transformPublicRecord(p wirePublicRecord) models.PublicRecord {
	return models.PublicRecord{
		ID:               p.ID,
		Type:             mapPublicRecordType(p.Type),
		FilingDate:       providers.ParseDate(p.Filed),
		SatisfactionDate: providers.ParseDate(p.Satisfied),
		Status:           mapPublicRecordStatus(p.Status),
		Amount:           p.Amount,
		Court:            p.Court,
		CaseNumber:       p.CaseNumber,
	}
}

func transformCollection(c wireCollection) models.CollectionAccount {
	return models.CollectionAccount{
		ID:               c.ID,
		CollectorName:    c.Agency,
		OriginalCreditor: strings.TrimSpace(c.OriginalCreditor),
		AccountNumber:    c.AccountNumber,
		DateOpened:       providers.ParseDate(c.Opened),
		DateReported:     providers.ParseDate(c.Reported),
		OriginalBalance:  providers.NonNegative(c.OriginalBalance),
		CurrentBalance:   providers.NonNegative(c.Balance),
		Status:           mapCollectionStatus(c.Status),
	}
}

// transformDisputeStatus maps a wire status. The outcome is only kept once resolved.
func transformDisputeStatus(id string, s wireDisputeStatus) models.DisputeStatusView {
	view := models.DisputeStatusView{
		DisputeID: id,
		Status:    mapDisputeStatus(s.Status),
		UpdatedAt: providers.ParseTime(s.UpdatedAt),
	}
	if view.Status == models.DisputeResolved {
		if r, ok := disputeOutcomes[code(s.Outcome)]; ok {
			view.Resolution = r
		} else {
			view.Resolution = models.ResolutionVerified
		}
	}
	return view
}
