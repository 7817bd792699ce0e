package models

// VerificationStatus is the trust tier of a listing
type VerificationStatus string

const (
	StatusVerified      VerificationStatus = "Verified"
	StatusUseCaution    VerificationStatus = "Use Caution"
	StatusPotentialScam VerificationStatus = "Potential Scam"
	// StatusPending is only used by callers before a listing is first verified.
	StatusPending VerificationStatus = "Pending"
)

// Severity of a red flag
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RedFlag is a single detected fraud indicator
type RedFlag struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// VerificationSignals are the positive trust indicators
type VerificationSignals struct {
	OfficialDomain  bool `json:"official_domain"`
	KnownPlatform   bool `json:"known_platform"`
	CompanyVerified bool `json:"company_verified"`
}

// VerificationResult is the full verification report for one listing
type VerificationResult struct {
	Status     VerificationStatus  `json:"status"`
	TrustScore int                 `json:"trust_score"`
	Signals    VerificationSignals `json:"verification_signals"`
	RedFlags   []RedFlag           `json:"red_flags"`
	Notes      string              `json:"verification_notes"`
}
