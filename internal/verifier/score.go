package verifier

import (
	"fmt"
	"strings"

	"github.com/khrees2412/internly/pkg/models"
)

const (
	baseTrustScore = 50

	verifiedThreshold = 80
	cautionThreshold  = 50
)

var severityPenalty = map[models.Severity]int{
	models.SeverityHigh:   20,
	models.SeverityMedium: 10,
	models.SeverityLow:    5,
}

// CalculateTrustScore starts at 50, adds 20/20/10 for the official domain,
// known platform and company verification signals, subtracts 20/10/5 per
// high/medium/low flag and clamps to [0, 100].
func CalculateTrustScore(signals models.VerificationSignals, flags []models.RedFlag) int {
	score := baseTrustScore
	if signals.OfficialDomain {
		score += 20
	}
	if signals.KnownPlatform {
		score += 20
	}
	if signals.CompanyVerified {
		score += 10
	}
	for _, f := range flags {
		score -= severityPenalty[f.Severity]
	}
	return min(100, max(0, score))
}

// ClassifyStatus maps a trust score to its tier
func ClassifyStatus(score int) models.VerificationStatus {
	switch {
	case score >= verifiedThreshold:
		return models.StatusVerified
	case score >= cautionThreshold:
		return models.StatusUseCaution
	default:
		return models.StatusPotentialScam
	}
}

// GenerateNotes renders a human-readable summary of a verification
func GenerateNotes(signals models.VerificationSignals, flags []models.RedFlag, score int) string {
	var notes []string

	if signals.OfficialDomain {
		notes = append(notes, "✓ Official company domain verified")
	}
	if signals.KnownPlatform {
		notes = append(notes, "✓ Listed on known platform")
	}
	if signals.CompanyVerified {
		notes = append(notes, "✓ Company verified on external sources")
	}

	if len(flags) > 0 {
		notes = append(notes, fmt.Sprintf("\n⚠ %d red flag(s) detected:", len(flags)))
		for _, f := range flags {
			notes = append(notes, "  - "+f.Description)
		}
	}

	switch ClassifyStatus(score) {
	case models.StatusVerified:
		notes = append(notes, "\n✅ This internship appears legitimate and safe to apply.")
	case models.StatusUseCaution:
		notes = append(notes, "\n⚠️ Exercise caution. Verify details before applying.")
	default:
		notes = append(notes, "\n❌ High risk of fraud. Avoid this internship.")
	}

	return strings.Join(notes, "\n")
}
