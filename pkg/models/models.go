package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// StudentProfile is the student side of every match and calendar lookup
type StudentProfile struct {
	ID              string    `json:"id"`
	Semester        int       `json:"current_semester"`
	Skills          []string  `json:"skills"`
	PreferredRoles  []string  `json:"preferred_roles"`
	TargetCompanies []string  `json:"target_companies"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewStudentProfile builds a profile, rejecting semesters outside 1-8.
// Skills are trimmed and de-duplicated case-insensitively; the first
// spelling of a skill wins.
func NewStudentProfile(id string, semester int, skills, roles, companies []string) (*StudentProfile, error) {
	if err := ValidateSemester(semester); err != nil {
		return nil, err
	}
	return &StudentProfile{
		ID:              id,
		Semester:        semester,
		Skills:          uniqueFold(skills),
		PreferredRoles:  uniqueFold(roles),
		TargetCompanies: uniqueFold(companies),
	}, nil
}

// Validate checks an already-populated profile (e.g. one read from storage)
func (p *StudentProfile) Validate() error {
	return ValidateSemester(p.Semester)
}

// InternshipListing represents a single internship posting
type InternshipListing struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title" validate:"required,max=200"`
	Company             string     `json:"company" validate:"required,max=200"`
	CompanyDomain       string     `json:"company_domain,omitempty" validate:"max=200"`
	Platform            string     `json:"platform,omitempty" validate:"max=100"`
	Location            string     `json:"location,omitempty"`
	Duration            string     `json:"duration,omitempty" validate:"max=50"`
	Stipend             string     `json:"stipend,omitempty" validate:"max=100"`
	RequiredSkills      []string   `json:"required_skills"`
	PreferredSkills     []string   `json:"preferred_skills"`
	Responsibilities    []string   `json:"responsibilities"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	StartDate           *time.Time `json:"start_date,omitempty"`
	SourceURL           string     `json:"source_url,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Validate enforces the required listing fields
func (l *InternshipListing) Validate() error {
	l.Title = strings.TrimSpace(l.Title)
	l.Company = strings.TrimSpace(l.Company)
	if err := validate.Struct(l); err != nil {
		return fromValidator(err)
	}
	return nil
}

// RankedInternship pairs a listing with its match against a profile
type RankedInternship struct {
	Listing         *InternshipListing `json:"internship"`
	MatchPercentage int                `json:"match_percentage"`
	MatchingSkills  []string           `json:"matching_skills"`
	MissingSkills   []string           `json:"missing_skills"`
}

func uniqueFold(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
