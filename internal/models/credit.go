// Package models defines the canonical credit report model shared by every
// provider adapter, the gateway and the analysis engine.
package models

import "time"

// Bureau identifies a national consumer credit reporting agency.
type Bureau string

const (
	BureauExperian   Bureau = "experian"
	BureauEquifax    Bureau = "equifax"
	BureauTransUnion Bureau = "transunion"
)

// AllBureaus returns the three bureaus in their canonical order.
func AllBureaus() []Bureau {
	return []Bureau{BureauExperian, BureauEquifax, BureauTransUnion}
}

// Valid reports whether b is one of the three known bureaus.
func (b Bureau) Valid() bool {
	switch b {
	case BureauExperian, BureauEquifax, BureauTransUnion:
		return true
	}
	return false
}

// ImpactLevel grades how strongly a factor or recommendation moves the score.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "high"
	ImpactMedium ImpactLevel = "medium"
	ImpactLow    ImpactLevel = "low"
)

// CreditReport is one bureau's snapshot for one consumer at one point in time.
// Reports are never mutated after construction; a new pull yields a new report.
type CreditReport struct {
	ID            string              `json:"id" badgerhold:"key"`
	UserID        string              `json:"user_id" badgerholdIndex:"UserID"`
	Bureau        Bureau              `json:"bureau"`
	PullDate      time.Time           `json:"pull_date"`
	Score         CreditScore         `json:"score"`
	PersonalInfo  PersonalInfo        `json:"personal_info"`
	Accounts      []TradelineAccount  `json:"accounts"`
	Inquiries     []CreditInquiry     `json:"inquiries"`
	PublicRecords []PublicRecord      `json:"public_records"`
	Collections   []CollectionAccount `json:"collections"`
}

// CreditScore is the bureau score delivered with a report.
type CreditScore struct {
	Bureau      Bureau        `json:"bureau"`
	Score       int           `json:"score"`
	Model       string        `json:"model"`
	GeneratedAt time.Time     `json:"generated_at"`
	Factors     []ScoreFactor `json:"factors"`
}

// ScoreFactor is a reason code the bureau attached to the score.
type ScoreFactor struct {
	Code        string      `json:"code"`
	Description string      `json:"description"`
	Impact      ImpactLevel `json:"impact"`
}

// PersonalInfo is the identity section of a report.
type PersonalInfo struct {
	Name        string     `json:"name"`
	AlsoKnownAs []string   `json:"also_known_as,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Addresses   []Address  `json:"addresses,omitempty"`
	Employers   []string   `json:"employers,omitempty"`
}

// Address is a postal address.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// AccountType classifies a tradeline. Unknown provider codes map to AccountTypeOther.
type AccountType string

const (
	AccountTypeRevolving    AccountType = "revolving"
	AccountTypeInstallment  AccountType = "installment"
	AccountTypeMortgage     AccountType = "mortgage"
	AccountTypeAuto         AccountType = "auto"
	AccountTypeStudent      AccountType = "student"
	AccountTypePersonal     AccountType = "personal"
	AccountTypeCreditCard   AccountType = "credit_card"
	AccountTypeRetail       AccountType = "retail"
	AccountTypeLineOfCredit AccountType = "line_of_credit"
	AccountTypeCollection   AccountType = "collection"
	AccountTypeOther        AccountType = "other"
)

// IsRevolving reports whether balances on this account type count toward utilization.
func (t AccountType) IsRevolving() bool {
	return t == AccountTypeRevolving || t == AccountTypeCreditCard
}

// AccountStatus is the open/closed state of a tradeline.
type AccountStatus string

const (
	AccountStatusOpen        AccountStatus = "open"
	AccountStatusClosed      AccountStatus = "closed"
	AccountStatusPaid        AccountStatus = "paid"
	AccountStatusTransferred AccountStatus = "transferred"
	AccountStatusUnknown     AccountStatus = "unknown"
)

// PaymentStatus is the current delinquency state of a tradeline. Delinquency
// buckets carry their day count in the value.
type PaymentStatus string

const (
	PaymentCurrent      PaymentStatus = "current"
	PaymentLate30       PaymentStatus = "30_days_late"
	PaymentLate60       PaymentStatus = "60_days_late"
	PaymentLate90       PaymentStatus = "90_days_late"
	PaymentLate120      PaymentStatus = "120_days_late"
	PaymentLate150      PaymentStatus = "150_days_late"
	PaymentLate180      PaymentStatus = "180_days_late"
	PaymentCollection   PaymentStatus = "collection"
	PaymentChargeOff    PaymentStatus = "charge_off"
	PaymentForeclosure  PaymentStatus = "foreclosure"
	PaymentRepossession PaymentStatus = "repossession"
)

// PaymentHistoryEntry is one month of a tradeline's payment grid.
type PaymentHistoryEntry struct {
	Month  string        `json:"month"` // YYYY-MM
	Status PaymentStatus `json:"status"`
}

// ResponsibilityType describes the consumer's liability on a tradeline.
type ResponsibilityType string

const (
	ResponsibilityIndividual     ResponsibilityType = "individual"
	ResponsibilityJoint          ResponsibilityType = "joint"
	ResponsibilityAuthorizedUser ResponsibilityType = "authorized_user"
	ResponsibilityCosigner       ResponsibilityType = "cosigner"
	ResponsibilityOther          ResponsibilityType = "other"
)

// TradelineAccount is a single reported credit account.
// CurrentBalance is never negative and DateClosed, when set, is not before DateOpened.
type TradelineAccount struct {
	ID                 string                `json:"id"`
	CreditorName       string                `json:"creditor_name"`
	AccountNumber      string                `json:"account_number"` // masked
	AccountType        AccountType           `json:"account_type"`
	AccountStatus      AccountStatus         `json:"account_status"`
	DateOpened         *time.Time            `json:"date_opened,omitempty"`
	DateClosed         *time.Time            `json:"date_closed,omitempty"`
	DateLastActive     *time.Time            `json:"date_last_active,omitempty"`
	CreditLimit        float64               `json:"credit_limit"`
	HighBalance        float64               `json:"high_balance"`
	CurrentBalance     float64               `json:"current_balance"`
	MonthlyPayment     float64               `json:"monthly_payment"`
	PaymentStatus      PaymentStatus         `json:"payment_status"`
	PaymentHistory     []PaymentHistoryEntry `json:"payment_history"`
	ResponsibilityType ResponsibilityType    `json:"responsibility_type"`
	Remarks            []string              `json:"remarks,omitempty"`
	DisputeStatus      *DisputeStatus        `json:"dispute_status,omitempty"`
}

// InquiryType distinguishes hard from soft credit checks.
type InquiryType string

const (
	InquiryHard InquiryType = "hard"
	InquirySoft InquiryType = "soft"
)

// CreditInquiry is a recorded credit check. Only hard inquiries affect the score.
type CreditInquiry struct {
	ID           string      `json:"id"`
	CreditorName string      `json:"creditor_name"`
	Date         time.Time   `json:"date"`
	Type         InquiryType `json:"type"`
	Purpose      string      `json:"purpose,omitempty"`
}

// PublicRecordType classifies a court or government record.
type PublicRecordType string

const (
	PublicRecordBankruptcy    PublicRecordType = "bankruptcy"
	PublicRecordTaxLien       PublicRecordType = "tax_lien"
	PublicRecordCivilJudgment PublicRecordType = "civil_judgment"
	PublicRecordForeclosure   PublicRecordType = "foreclosure"
	PublicRecordOther         PublicRecordType = "other"
)

// PublicRecordStatus is the standing of a public record.
type PublicRecordStatus string

const (
	PublicRecordActive    PublicRecordStatus = "active"
	PublicRecordReleased  PublicRecordStatus = "released"
	PublicRecordDismissed PublicRecordStatus = "dismissed"
	// PublicRecordUnknown is a missing or unmapped provider status. It never
	// scores as an issue.
	PublicRecordUnknown PublicRecordStatus = "unknown"
)

// PublicRecord is a bankruptcy, lien, judgment or foreclosure filing.
type PublicRecord struct {
	ID               string             `json:"id"`
	Type             PublicRecordType   `json:"type"`
	FilingDate       *time.Time         `json:"filing_date,omitempty"`
	SatisfactionDate *time.Time         `json:"satisfaction_date,omitempty"`
	Status           PublicRecordStatus `json:"status"`
	Amount           *float64           `json:"amount,omitempty"`
	Court            string             `json:"court,omitempty"`
	CaseNumber       string             `json:"case_number,omitempty"`
}

// CollectionStatus is the standing of a collection account.
type CollectionStatus string

const (
	CollectionOpen    CollectionStatus = "open"
	CollectionPaid    CollectionStatus = "paid"
	CollectionSettled CollectionStatus = "settled"
	CollectionDeleted CollectionStatus = "deleted"
)

// CollectionAccount is a debt placed with a collection agency.
// A paid collection is expected to trend toward a zero balance; the model does not enforce it.
type CollectionAccount struct {
	ID               string           `json:"id"`
	CollectorName    string           `json:"collector_name"`
	OriginalCreditor string           `json:"original_creditor,omitempty"`
	AccountNumber    string           `json:"account_number"` // masked
	DateOpened       *time.Time       `json:"date_opened,omitempty"`
	DateReported     *time.Time       `json:"date_reported,omitempty"`
	OriginalBalance  float64          `json:"original_balance"`
	CurrentBalance   float64          `json:"current_balance"`
	Status           CollectionStatus `json:"status"`
}
