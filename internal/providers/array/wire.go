package array

// Wire schema for the v2 credit API. Every field is a string or number as the
// provider sends it; enum codes are upper-case and unvalidated until transform.

type wireAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type wireConsumerIdentity struct {
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	SSN         string      `json:"ssn"`
	DateOfBirth string      `json:"dob"`
	Address     wireAddress `json:"address"`
}

type wireConsent struct {
	Timestamp string `json:"timestamp"`
	IPAddress string `json:"ipAddress"`
}

type wirePullRequest struct {
	UserID   string               `json:"userId"`
	Consumer wireConsumerIdentity `json:"consumer"`
	Bureaus  []string             `json:"bureaus"`
	Consent  wireConsent          `json:"consent"`
}

type wirePullResponse struct {
	Reports []wireReport      `json:"reports"`
	Errors  []wireBureauError `json:"errors"`
}

type wireBureauError struct {
	Bureau  string `json:"bureau"`
	Message string `json:"message"`
}

type wireReport struct {
	ReportKey     string             `json:"reportKey"`
	Bureau        string             `json:"bureau"`
	PulledAt      string             `json:"pulledAt"`
	Score         wireScore          `json:"score"`
	Consumer      wireConsumer       `json:"consumer"`
	Tradelines    []wireTradeline    `json:"tradelines"`
	Inquiries     []wireInquiry      `json:"inquiries"`
	PublicRecords []wirePublicRecord `json:"publicRecords"`
	Collections   []wireCollection   `json:"collections"`
}

type wireScore struct {
	Value   int          `json:"value"`
	Model   string       `json:"model"`
	Date    string       `json:"date"`
	Factors []wireFactor `json:"factors"`
}

type wireFactor struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type wireConsumer struct {
	Name      string        `json:"name"`
	Aliases   []string      `json:"aliases"`
	DOB       string        `json:"dob"`
	Addresses []wireAddress `json:"addresses"`
	Employers []string      `json:"employers"`
}

type wireHistoryEntry struct {
	Month string `json:"month"`
	Code  string `json:"code"`
}

type wireTradeline struct {
	ID             string             `json:"id"`
	Creditor       string             `json:"creditor"`
	AccountNumber  string             `json:"accountNumber"`
	Type           string             `json:"type"`
	Status         string             `json:"status"`
	Opened         string             `json:"opened"`
	Closed         string             `json:"closed"`
	LastActivity   string             `json:"lastActivity"`
	CreditLimit    float64            `json:"creditLimit"`
	HighBalance    float64            `json:"highBalance"`
	Balance        float64            `json:"balance"`
	MonthlyPayment float64            `json:"monthlyPayment"`
	PaymentStatus  string             `json:"paymentStatus"`
	History        []wireHistoryEntry `json:"history"`
	Responsibility string             `json:"responsibility"`
	Remarks        []string           `json:"remarks"`
	DisputeStatus  string             `json:"disputeStatus"`
}

type wireInquiry struct {
	ID       string `json:"id"`
	Creditor string `json:"creditor"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Purpose  string `json:"purpose"`
}

type wirePublicRecord struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Filed      string   `json:"filed"`
	Satisfied  string   `json:"satisfied"`
	Status     string   `json:"status"`
	Amount     *float64 `json:"amount"`
	Court      string   `json:"court"`
	CaseNumber string   `json:"caseNumber"`
}

type wireCollection struct {
	ID               string  `json:"id"`
	Agency           string  `json:"agency"`
	OriginalCreditor string  `json:"originalCreditor"`
	AccountNumber    string  `json:"accountNumber"`
	Opened           string  `json:"opened"`
	Reported         string  `json:"reported"`
	OriginalBalance  float64 `json:"originalBalance"`
	Balance          float64 `json:"balance"`
	Status           string  `json:"status"`
}

type wireDisputeRequest struct {
	UserID      string   `json:"userId"`
	ReportKey   string   `json:"reportKey"`
	TradelineID string   `json:"tradelineId"`
	Bureau      string   `json:"bureau"`
	ReasonCode  string   `json:"reasonCode"`
	Statement   string   `json:"statement"`
	Attachments []string `json:"attachments,omitempty"`
}

type wireDisputeResponse struct {
	DisputeID               string `json:"disputeId"`
	ConfirmationNumber      string `json:"confirmationNumber"`
	EstimatedCompletionDate string `json:"estimatedCompletionDate"`
	Status                  string `json:"status"`
}

type wireDisputeStatus struct {
	DisputeID string `json:"disputeId"`
	Status    string `json:"status"`
	Outcome   string `json:"outcome"`
	UpdatedAt string `json:"updatedAt"`
}

type wireEnrollmentRequest struct {
	UserID string `json:"userId"`
}

type wireEnrollment struct {
	EnrollmentID string `json:"enrollmentId"`
	Status       string `json:"status"`
	EnrolledAt   string `json:"enrolledAt"`
}
