package plaid

// Wire schema for the link-flow credit API (snake_case, lower-case enum codes).

type wireLinkTokenRequest struct {
	ClientUserID string   `json:"client_user_id"`
	Products     []string `json:"products"`
}

type wireLinkTokenResponse struct {
	LinkToken  string `json:"link_token"`
	Expiration string `json:"expiration"`
	RequestID  string `json:"request_id"`
}

type wireExchangeRequest struct {
	PublicToken string `json:"public_token"`
}

type wireExchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

type wireReportRequest struct {
	AccessToken string   `json:"access_token"`
	Bureaus     []string `json:"bureaus"`
}

type wireReportResponse struct {
	Reports      []wireReport      `json:"reports"`
	BureauErrors []wireBureauError `json:"bureau_errors"`
}

type wireBureauError struct {
	Bureau       string `json:"bureau"`
	ErrorMessage string `json:"error_message"`
}

type wireReport struct {
	ReportID      string             `json:"report_id"`
	Bureau        string             `json:"bureau"`
	GeneratedAt   string             `json:"generated_at"`
	Score         wireScore          `json:"score"`
	Identity      wireIdentity       `json:"identity"`
	Accounts      []wireAccount      `json:"accounts"`
	Inquiries     []wireInquiry      `json:"inquiries"`
	PublicRecords []wirePublicRecord `json:"public_records"`
	Collections   []wireCollection   `json:"collections"`
}

type wireScore struct {
	Score       int              `json:"score"`
	ModelName   string           `json:"model_name"`
	AsOf        string           `json:"as_of"`
	ReasonCodes []wireReasonCode `json:"reason_codes"`
}

type wireReasonCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Weight      string `json:"weight"`
}

type wireIdentity struct {
	FullName    string        `json:"full_name"`
	Aliases     []string      `json:"aliases"`
	DateOfBirth string        `json:"date_of_birth"`
	Addresses   []wireAddress `json:"addresses"`
	Employers   []string      `json:"employers"`
}

type wireAddress struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

type wireHistoryEntry struct {
	Period string `json:"period"`
	Rating string `json:"rating"`
}

type wireAccount struct {
	AccountID        string             `json:"account_id"`
	InstitutionName  string             `json:"institution_name"`
	Mask             string             `json:"mask"`
	Kind             string             `json:"kind"`
	State            string             `json:"state"`
	OpenedDate       string             `json:"opened_date"`
	ClosedDate       string             `json:"closed_date"`
	LastActivityDate string             `json:"last_activity_date"`
	Limit            float64            `json:"limit"`
	HighestBalance   float64            `json:"highest_balance"`
	Balance          float64            `json:"balance"`
	PaymentAmount    float64            `json:"payment_amount"`
	PaymentRating    string             `json:"payment_rating"`
	History          []wireHistoryEntry `json:"history"`
	Ownership        string             `json:"ownership"`
	Comments         []string           `json:"comments"`
	DisputeState     string             `json:"dispute_state"`
}

type wireInquiry struct {
	InquiryID string `json:"inquiry_id"`
	Requester string `json:"requester"`
	Date      string `json:"date"`
	Kind      string `json:"kind"`
	Reason    string `json:"reason"`
}

type wirePublicRecord struct {
	RecordID      string   `json:"record_id"`
	RecordType    string   `json:"record_type"`
	FiledDate     string   `json:"filed_date"`
	SatisfiedDate string   `json:"satisfied_date"`
	Status        string   `json:"status"`
	Amount        *float64 `json:"amount"`
	CourtName     string   `json:"court_name"`
	Docket        string   `json:"docket"`
}

type wireCollection struct {
	CollectionID     string  `json:"collection_id"`
	AgencyName       string  `json:"agency_name"`
	OriginalCreditor string  `json:"original_creditor"`
	Mask             string  `json:"mask"`
	OpenedDate       string  `json:"opened_date"`
	ReportedDate     string  `json:"reported_date"`
	OriginalAmount   float64 `json:"original_amount"`
	Balance          float64 `json:"balance"`
	Status           string  `json:"status"`
}

type wireDisputeCreateRequest struct {
	ClientUserID string   `json:"client_user_id"`
	ReportID     string   `json:"report_id"`
	AccountID    string   `json:"account_id"`
	Bureau       string   `json:"bureau"`
	Reason       string   `json:"reason"`
	Explanation  string   `json:"explanation"`
	Documents    []string `json:"documents,omitempty"`
}

type wireDisputeCreateResponse struct {
	DisputeID              string `json:"dispute_id"`
	ConfirmationCode       string `json:"confirmation_code"`
	ExpectedResolutionDate string `json:"expected_resolution_date"`
}

type wireDisputeGetRequest struct {
	DisputeID string `json:"dispute_id"`
}

type wireDisputeGetResponse struct {
	Dispute wireDispute `json:"dispute"`
}

type wireDispute struct {
	DisputeID   string `json:"dispute_id"`
	Status      string `json:"status"`
	Result      string `json:"result"`
	LastUpdated string `json:"last_updated"`
}

type wireMonitoringRequest struct {
	ClientUserID string `json:"client_user_id"`
}

type wireMonitoringResponse struct {
	SubscriptionID string `json:"subscription_id"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}
