package verifier

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/khrees2412/internly/internal/logger"
	"github.com/khrees2412/internly/pkg/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// maxRealisticStipend is the monthly amount above which a stipend is suspicious
	maxRealisticStipend  = 50000
	minResponsibilityLen = 50
)

var registrationFeeKeywords = []string{
	"registration fee",
	"registration charge",
	"enrollment fee",
	"joining fee",
	"application fee",
	"processing fee",
	"security deposit",
	"refundable deposit",
	"pay to apply",
	"payment required",
}

var whatsappOnlyKeywords = []string{
	"whatsapp only",
	"contact on whatsapp",
	"whatsapp for details",
	"message on whatsapp",
	"whatsapp number",
	"dm on whatsapp",
}

var vagueKeywords = []string{
	"various tasks",
	"general work",
	"miscellaneous duties",
	"as assigned",
	"other duties",
	"flexible role",
	"multiple responsibilities",
}

// stipendAmount captures the first number in a stipend string and an
// optional "k" after it. Units glued to the number ("60000inr") still match.
var stipendAmount = regexp.MustCompile(`₹?\s*(\d+(?:,\d+)*(?:\.\d+)?)\s*(k)?`)

var amountPrinter = message.NewPrinter(language.English)

// DetectRedFlags scans a listing for known fraud indicators.
// Flags are returned in a fixed order: registration fee, WhatsApp-only
// contact, free email domain, unrealistic stipend, vague description.
func DetectRedFlags(listing *models.InternshipListing) []models.RedFlag {
	flags := []models.RedFlag{}

	combined := strings.ToLower(strings.Join([]string{
		listing.Title,
		listing.Company,
		listing.Stipend,
		strings.Join(listing.Responsibilities, " "),
	}, " "))

	if kw, ok := firstContained(combined, registrationFeeKeywords); ok {
		flags = append(flags, models.RedFlag{
			Type:        "registration_fee",
			Severity:    models.SeverityHigh,
			Description: "Asks for registration or enrollment fee",
		})
		logger.Debug().Str("keyword", kw).Msg("registration fee red flag")
	}

	if kw, ok := firstContained(combined, whatsappOnlyKeywords); ok {
		flags = append(flags, models.RedFlag{
			Type:        "whatsapp_only",
			Severity:    models.SeverityHigh,
			Description: "Uses WhatsApp as the only contact method",
		})
		logger.Debug().Str("keyword", kw).Msg("whatsapp-only red flag")
	}

	if freeEmailDomains[strings.ToLower(strings.TrimSpace(listing.CompanyDomain))] {
		flags = append(flags, models.RedFlag{
			Type:        "non_official_email",
			Severity:    models.SeverityHigh,
			Description: "Uses non-official email domain (Gmail, Yahoo, etc.)",
		})
	}

	if amount, ok := ParseStipend(listing.Stipend); ok && amount > maxRealisticStipend {
		flags = append(flags, models.RedFlag{
			Type:        "unrealistic_stipend",
			Severity:    models.SeverityMedium,
			Description: amountPrinter.Sprintf("Unrealistically high stipend (₹%d) for internship", int64(amount)),
		})
	}

	if flag, ok := vagueDescription(listing.Responsibilities); ok {
		flags = append(flags, flag)
	}

	return flags
}

// ParseStipend extracts a monthly amount from free text such as
// "₹15,000/month" or "25k". Text without digits (e.g. "Unpaid") yields false.
func ParseStipend(stipend string) (float64, bool) {
	text := strings.ToLower(stipend)
	m := stipendAmount.FindStringSubmatchIndex(text)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(text[m[2]:m[3]], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if m[4] >= 0 && thousandsSuffix(text[m[5]:]) {
		value *= 1000
	}
	return value, true
}

// thousandsSuffix reports whether the "k" before rest is a multiplier and
// not the start of a word: "25k", "25k/month" and "80kpm" are, "5 kids" is not.
func thousandsSuffix(rest string) bool {
	if strings.HasPrefix(rest, "pm") {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return rest == "" || !unicode.IsLetter(r)
}

func vagueDescription(responsibilities []string) (models.RedFlag, bool) {
	if len(responsibilities) == 0 {
		return models.RedFlag{
			Type:        "vague_description",
			Severity:    models.SeverityMedium,
			Description: "No job responsibilities specified",
		}, true
	}

	text := strings.ToLower(strings.Join(responsibilities, " "))
	vague := 0
	for _, kw := range vagueKeywords {
		if strings.Contains(text, kw) {
			vague++
		}
	}

	short := len(responsibilities) == 1 && utf8.RuneCountInString(responsibilities[0]) < minResponsibilityLen
	if vague >= 2 || short {
		return models.RedFlag{
			Type:        "vague_description",
			Severity:    models.SeverityMedium,
			Description: "Job responsibilities are vague or poorly defined",
		}, true
	}
	return models.RedFlag{}, false
}

func firstContained(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
