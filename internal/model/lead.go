package model

// Intent labels produced by intent detection.
const (
	IntentSalesInquiry      = "sales_inquiry"
	IntentPerformanceQuery  = "performance_query"
	IntentTechnicalQuestion = "technical_question"
	IntentGeneralInquiry    = "general_inquiry"
)

// Lead tiers derived from the numeric score.
const (
	TierHot  = "hot"
	TierWarm = "warm"
	TierCold = "cold"
)

// IntentResult is the outcome of intent detection. Confidence is
// informational and never gates downstream logic.
type IntentResult struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// LeadAnalysis is the outcome of lead scoring. Score is always in [1,100];
// Tier is a pure function of Score (hot ≥70, warm ≥40, cold otherwise).
type LeadAnalysis struct {
	Score   int             `json:"score"`
	Tier    string          `json:"tier"`
	Factors map[string]bool `json:"factors"`
}

// LeadInfo is the lead identity extracted from a conversation. Name defaults
// to "Unknown" when no name can be determined.
type LeadInfo struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

// EmailRequest is the inbound payload for email processing.
type EmailRequest struct {
	EmailBody string `json:"email_body"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject,omitempty"`
}

// CallResult is the aggregated response for a processed call recording.
type CallResult struct {
	Transcription  string   `json:"transcription"`
	Intent         string   `json:"intent"`
	Confidence     float64  `json:"confidence"`
	LeadScore      int      `json:"lead_score"`
	LeadTier       string   `json:"lead_tier"`
	Requirements   []string `json:"requirements"`
	SuggestedEmail string   `json:"suggested_email"`
	NextStep       string   `json:"next_step"`
	LeadName       *string  `json:"lead_name"`
	LeadEmail      *string  `json:"lead_email"`
	LeadPhone      *string  `json:"lead_phone"`
	Company        *string  `json:"company"`
}

// ExtractedData groups the secondary derivations returned for an email.
type ExtractedData struct {
	Requirements []string        `json:"requirements"`
	Factors      map[string]bool `json:"factors"`
}

// EmailResult is the aggregated response for a processed email.
type EmailResult struct {
	Sender            string        `json:"sender"`
	Intent            string        `json:"intent"`
	Confidence        float64       `json:"confidence"`
	LeadScore         int           `json:"lead_score"`
	LeadTier          string        `json:"lead_tier"`
	SuggestedResponse string        `json:"suggested_response"`
	ExtractedData     ExtractedData `json:"extracted_data"`
}
