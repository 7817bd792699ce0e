package matcher

import (
	"sort"
	"strings"

	"github.com/khrees2412/internly/pkg/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var learningTimes = map[string]string{
	"easy":   "1-2 weeks",
	"medium": "3-4 weeks",
	"hard":   "6-8 weeks",
}

var skillDifficulty = map[string]string{
	"git":  "easy",
	"html": "easy",
	"css":  "easy",
	"sql":  "easy",

	"python":     "medium",
	"javascript": "medium",
	"react":      "medium",
	"node.js":    "medium",
	"django":     "medium",
	"flask":      "medium",
	"rest api":   "medium",
	"mongodb":    "medium",
	"postgresql": "medium",

	"machine learning":    "hard",
	"data science":        "hard",
	"kubernetes":          "hard",
	"aws":                 "hard",
	"system design":       "hard",
	"distributed systems": "hard",
}

type resourceEntry struct {
	skill     string
	resources []string
}

// learningResources is ordered: partial matches take the first hit.
var learningResources = []resourceEntry{
	{"python", []string{"Python Official Tutorial (python.org)", "Coursera: Python for Everybody", "Real Python Tutorials"}},
	{"java", []string{"Oracle Java Tutorials", "Coursera: Java Programming and Software Engineering", "Codecademy: Learn Java"}},
	{"javascript", []string{"MDN Web Docs: JavaScript Guide", "freeCodeCamp: JavaScript Algorithms", "Eloquent JavaScript (book)"}},
	{"c++", []string{"LearnCpp.com", "Coursera: C++ For C Programmers", "C++ Reference Documentation"}},
	{"c", []string{"Learn-C.org", "CS50: Introduction to Computer Science", "The C Programming Language (book)"}},
	{"react", []string{"React Official Documentation", "freeCodeCamp: Front End Development Libraries", "Scrimba: Learn React"}},
	{"angular", []string{"Angular Official Tutorial", "Udemy: Angular - The Complete Guide", "Angular University Courses"}},
	{"vue", []string{"Vue.js Official Guide", "Vue Mastery Courses", "freeCodeCamp: Vue.js Course"}},
	{"node.js", []string{"Node.js Official Guides", "freeCodeCamp: Back End Development", "The Net Ninja: Node.js Tutorial"}},
	{"django", []string{"Django Official Tutorial", "Django for Beginners (book)", "Coursera: Django for Everybody"}},
	{"flask", []string{"Flask Official Tutorial", "Miguel Grinberg's Flask Mega-Tutorial", "Real Python: Flask Tutorials"}},
	{"sql", []string{"SQLBolt Interactive Tutorial", "Khan Academy: Intro to SQL", "Mode Analytics: SQL Tutorial"}},
	{"mongodb", []string{"MongoDB University", "MongoDB Official Documentation", "freeCodeCamp: MongoDB Course"}},
	{"postgresql", []string{"PostgreSQL Official Tutorial", "PostgreSQL Exercises", "Udemy: The Complete PostgreSQL Bootcamp"}},
	{"machine learning", []string{"Coursera: Machine Learning by Andrew Ng", "fast.ai: Practical Deep Learning", "Google's Machine Learning Crash Course"}},
	{"data analysis", []string{"Coursera: Google Data Analytics Certificate", "DataCamp: Data Analyst Track", "Kaggle Learn: Data Analysis"}},
	{"pandas", []string{"Pandas Official Documentation", "Kaggle Learn: Pandas", "Real Python: Pandas Tutorials"}},
	{"numpy", []string{"NumPy Official Tutorial", "Coursera: Applied Data Science with Python", "DataCamp: Introduction to NumPy"}},
	{"aws", []string{"AWS Training and Certification", "A Cloud Guru: AWS Certified Solutions Architect", "freeCodeCamp: AWS Certified Cloud Practitioner"}},
	{"docker", []string{"Docker Official Get Started Guide", "Docker Mastery Course", "Play with Docker Classroom"}},
	{"kubernetes", []string{"Kubernetes Official Tutorial", "Kubernetes for Beginners (KodeKloud)", "CNCF Kubernetes Fundamentals"}},
	{"git", []string{"Git Official Documentation", "GitHub Learning Lab", "Atlassian Git Tutorial"}},
	{"rest api", []string{"RESTful API Design Tutorial", "Postman Learning Center", "freeCodeCamp: APIs for Beginners"}},
	{"graphql", []string{"GraphQL Official Tutorial", "How to GraphQL", "Apollo GraphQL Tutorials"}},
}

var defaultResources = []string{
	"Coursera: Search for relevant courses",
	"Udemy: Search for skill-specific courses",
	"YouTube: Search for tutorials",
	"Official documentation for the technology",
}

// minPartialMatch is the shortest key or skill allowed to match by substring
const minPartialMatch = 3

// SkillDifficulty looks up how hard a skill is to learn; unknown skills are Medium
func SkillDifficulty(skill string) models.Difficulty {
	d, ok := skillDifficulty[NormalizeSkill(skill)]
	if !ok {
		d = "medium"
	}
	// Casers hold state, so each call gets its own.
	return models.Difficulty(cases.Title(language.English).String(d))
}

// EstimatedTime is the learning time for a difficulty tier
func EstimatedTime(d models.Difficulty) string {
	if t, ok := learningTimes[strings.ToLower(string(d))]; ok {
		return t
	}
	return learningTimes["medium"]
}

// LearningResources returns study material for a skill: an exact table hit,
// then the first substring match of at least three characters ("react.js"
// finds "react"), then a generic list. The result is a fresh slice.
func LearningResources(skill string) []string {
	s := NormalizeSkill(skill)
	for _, e := range learningResources {
		if e.skill == s {
			return append([]string(nil), e.resources...)
		}
	}
	if len(s) >= minPartialMatch {
		for _, e := range learningResources {
			if len(e.skill) < minPartialMatch {
				continue
			}
			if strings.Contains(s, e.skill) || strings.Contains(e.skill, s) {
				return append([]string(nil), e.resources...)
			}
		}
	}
	return append([]string(nil), defaultResources...)
}

// GenerateLearningPath builds one item per missing skill. Skills that the
// listing requires are High priority, the rest Medium. Items are ordered
// High, Medium, Low; the sort is stable so skills of equal priority keep
// their input order.
func GenerateLearningPath(missingSkills, requiredSkills []string) []models.LearningPathItem {
	required := make(map[string]bool, len(requiredSkills))
	for _, s := range requiredSkills {
		required[NormalizeSkill(s)] = true
	}

	path := make([]models.LearningPathItem, 0, len(missingSkills))
	for _, skill := range missingSkills {
		difficulty := SkillDifficulty(skill)
		priority := models.PriorityMedium
		if required[NormalizeSkill(skill)] {
			priority = models.PriorityHigh
		}
		path = append(path, models.LearningPathItem{
			Skill:         skill,
			EstimatedTime: EstimatedTime(difficulty),
			Difficulty:    difficulty,
			Resources:     LearningResources(skill),
			Priority:      priority,
		})
	}

	sortByPriority(path)
	return path
}

func sortByPriority(path []models.LearningPathItem) {
	sort.SliceStable(path, func(i, j int) bool {
		return path[i].Priority.Rank() < path[j].Priority.Rank()
	})
}
