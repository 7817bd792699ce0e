// Package verifier scores internship listings for fraud risk.
//
// Every function here is pure: the same listing always yields the same
// result, nothing is cached and nothing blocks, so callers may verify
// listings concurrently without synchronization.
package verifier

import (
	"context"
	"regexp"
	"strings"

	"github.com/khrees2412/internly/internal/logger"
	"github.com/khrees2412/internly/pkg/models"
	"golang.org/x/sync/errgroup"
)

// knownPlatforms are listing sources considered legitimate
var knownPlatforms = map[string]bool{
	"internshala":         true,
	"linkedin":            true,
	"wellfound":           true,
	"aicte":               true,
	"nsdc":                true,
	"company career page": true,
	"company careers":     true,
	"naukri":              true,
	"indeed":              true,
	"glassdoor":           true,
}

// freeEmailDomains never count as an official company domain
var freeEmailDomains = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"rediffmail.com": true,
	"ymail.com":      true,
}

var commonTLDs = map[string]bool{
	"com": true, "org": true, "net": true, "edu": true, "gov": true,
	"co": true, "in": true, "io": true, "ai": true,
}

var (
	corporateSuffix = regexp.MustCompile(`\s+(pvt\.?|ltd\.?|inc\.?|corp\.?|llc|limited|private)$`)
	nonAlnum        = regexp.MustCompile(`[^a-z0-9]`)
)

// CheckDomainAuthenticity reports whether domain plausibly belongs to company.
// Free email providers and empty domains always fail. Otherwise any
// non-TLD label of the domain must contain the normalized company name,
// or be contained in it, so careers.techcorp.com matches "TechCorp Pvt Ltd".
func CheckDomainAuthenticity(company, domain string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false
	}
	if freeEmailDomains[domain] {
		logger.Debug().Str("domain", domain).Msg("free email domain used as company domain")
		return false
	}

	name := normalizeCompany(company)
	if name == "" {
		return false
	}

	for _, label := range strings.Split(domain, ".") {
		if commonTLDs[label] {
			continue
		}
		label = nonAlnum.ReplaceAllString(label, "")
		if label == "" {
			continue
		}
		if strings.Contains(label, name) || strings.Contains(name, label) {
			return true
		}
	}
	return false
}

// normalizeCompany lowercases the name, strips trailing corporate
// suffixes ("Pvt Ltd", "Inc.") and drops everything but letters and digits.
func normalizeCompany(company string) string {
	name := strings.ToLower(strings.TrimSpace(company))
	for {
		stripped := corporateSuffix.ReplaceAllString(name, "")
		if stripped == name {
			break
		}
		name = stripped
	}
	return nonAlnum.ReplaceAllString(name, "")
}

// CheckPlatformLegitimacy reports whether platform is on the allow-list
func CheckPlatformLegitimacy(platform string) bool {
	return knownPlatforms[strings.ToLower(strings.TrimSpace(platform))]
}

// Verify runs every check against a listing and assembles the report.
// Company verification needs an external registry, so that signal is
// always false here.
func Verify(listing *models.InternshipListing) models.VerificationResult {
	signals := models.VerificationSignals{
		OfficialDomain: CheckDomainAuthenticity(listing.Company, listing.CompanyDomain),
		KnownPlatform:  CheckPlatformLegitimacy(listing.Platform),
	}
	flags := DetectRedFlags(listing)
	score := CalculateTrustScore(signals, flags)
	status := ClassifyStatus(score)

	logger.Debug().
		Str("listing", listing.ID).
		Int("trust_score", score).
		Int("red_flags", len(flags)).
		Str("status", string(status)).
		Msg("listing verified")

	return models.VerificationResult{
		Status:     status,
		TrustScore: score,
		Signals:    signals,
		RedFlags:   flags,
		Notes:      GenerateNotes(signals, flags, score),
	}
}

// VerifyAll verifies listings in parallel. Results are in input order.
// workers <= 0 means no limit.
func VerifyAll(ctx context.Context, listings []*models.InternshipListing, workers int) ([]models.VerificationResult, error) {
	results := make([]models.VerificationResult, len(listings))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, l := range listings {
		i, l := i, l
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Verify(l)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
