// Package matcher compares a student's skills with internship requirements.
package matcher

import (
	"strings"

	"github.com/khrees2412/internly/internal/logger"
	"github.com/khrees2412/internly/pkg/models"
)

// Weights of required and preferred skills when both are present, in percent
const (
	requiredWeight  = 70
	preferredWeight = 30
)

// NormalizeSkill is the comparison key for a skill name
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// CalculateSkillMatch scores userSkills against a listing's required and
// optional preferred skills. All comparisons are case-insensitive while the
// returned skill names keep the spelling used in the requirement lists.
//
// Without preferred skills the score is floor(100 * matched/required).
// With them it is floor(70 * matchedReq/required + 30 * matchedPref/preferred).
// An empty requirement list is a vacuous 100% match.
func CalculateSkillMatch(userSkills, requiredSkills, preferredSkills []string) models.SkillMatch {
	required := distinct(requiredSkills)
	if len(required) == 0 {
		return models.SkillMatch{
			MatchPercentage: 100,
			MatchingSkills:  []string{},
			MissingSkills:   []string{},
		}
	}

	have := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		if n := NormalizeSkill(s); n != "" {
			have[n] = true
		}
	}

	match := models.SkillMatch{
		MatchingSkills: []string{},
		MissingSkills:  []string{},
	}
	for _, s := range required {
		if have[NormalizeSkill(s)] {
			match.MatchingSkills = append(match.MatchingSkills, s)
		} else {
			match.MissingSkills = append(match.MissingSkills, s)
		}
	}

	matchedReq, totalReq := len(match.MatchingSkills), len(required)
	preferred := distinct(preferredSkills)
	if len(preferred) == 0 {
		match.MatchPercentage = 100 * matchedReq / totalReq
	} else {
		for _, s := range preferred {
			if have[NormalizeSkill(s)] {
				match.MatchingPreferred = append(match.MatchingPreferred, s)
			}
		}
		matchedPref, totalPref := len(match.MatchingPreferred), len(preferred)
		// integer form of the weighted sum keeps the floor exact
		match.MatchPercentage = (requiredWeight*matchedReq*totalPref + preferredWeight*matchedPref*totalReq) /
			(totalReq * totalPref)
	}
	match.MatchPercentage = min(100, max(0, match.MatchPercentage))

	logger.Debug().
		Int("match_percentage", match.MatchPercentage).
		Int("matching", len(match.MatchingSkills)).
		Int("missing", len(match.MissingSkills)).
		Msg("skill match calculated")

	return match
}

// CreateSkillMatch matches a student against a listing and attaches the
// learning path for every missing required skill.
func CreateSkillMatch(userSkills []string, listing *models.InternshipListing) models.SkillMatch {
	match := CalculateSkillMatch(userSkills, listing.RequiredSkills, listing.PreferredSkills)
	match.LearningPath = GenerateLearningPath(match.MissingSkills, listing.RequiredSkills)
	return match
}

// distinct drops blank entries and case-insensitive duplicates, keeping
// the first spelling of each skill.
func distinct(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := NormalizeSkill(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
