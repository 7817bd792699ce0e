package models

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank orders priorities High < Medium < Low; unknown values sort last
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// LearningPathItem is one remediation step for a missing skill
type LearningPathItem struct {
	Skill         string     `json:"skill"`
	EstimatedTime string     `json:"estimated_time"`
	Difficulty    Difficulty `json:"difficulty"`
	Resources     []string   `json:"resources"`
	Priority      Priority   `json:"priority"`
}

// SkillMatch is the overlap between a student's skills and a listing.
// MatchingSkills and MissingSkills partition the listing's required skills;
// preferred skills the student has are reported separately.
type SkillMatch struct {
	MatchPercentage   int                `json:"match_percentage"`
	MatchingSkills    []string           `json:"matching_skills"`
	MissingSkills     []string           `json:"missing_skills"`
	MatchingPreferred []string           `json:"matching_preferred_skills,omitempty"`
	LearningPath      []LearningPathItem `json:"learning_path"`
}
