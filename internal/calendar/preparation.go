package calendar

import (
	"fmt"
	"slices"
	"time"

	"github.com/khrees2412/internly/internal/logger"
	"github.com/khrees2412/internly/pkg/models"
)

var (
	skillBuildingActions = []string{
		"Build strong foundation in core subjects",
		"Learn programming languages and tools",
		"Work on small projects to practice",
		"Maintain good academic performance",
	}
	interviewActions = []string{
		"Polish your resume immediately",
		"Prepare for technical interviews",
		"Research target companies",
		"Practice coding problems daily",
		"Update LinkedIn profile",
	}
	portfolioActions = []string{
		"Complete relevant online courses/certifications",
		"Build 2-3 strong projects for your portfolio",
		"Start practicing coding problems",
		"Update resume with recent projects",
		"Network with professionals in your field",
	}
	longHorizonActions = []string{
		"Learn new technologies relevant to your field",
		"Build comprehensive projects",
		"Contribute to open source",
		"Develop strong problem-solving skills",
		"Build a professional online presence",
	}
)

// CalculatePreparationWindow reports how long the student has until
// targetMonth, seen from now. A targetMonth of 0 means the first month of the
// semester's application window. Skill-building semesters get a fixed action
// list and no time fields.
func CalculatePreparationWindow(semester int, now time.Time, targetMonth int) (models.PreparationWindow, error) {
	plan, err := planFor(semester)
	if err != nil {
		return models.PreparationWindow{}, err
	}
	if targetMonth != 0 {
		if err := models.ValidateMonth(targetMonth); err != nil {
			return models.PreparationWindow{}, err
		}
	}

	current := CurrentMonth(now)
	window := models.PreparationWindow{
		Semester:     semester,
		CurrentMonth: current,
	}

	if plan.skillBuilding() {
		window.PreparationStatus = "Focus on skill building - no immediate internship applications"
		window.RecommendedActions = slices.Clone(skillBuildingActions)
		return window, nil
	}

	if targetMonth == 0 {
		targetMonth = slices.Min(plan.applyMonths)
	}

	var months int
	year := now.Year()
	if targetMonth >= current {
		months = targetMonth - current
	} else {
		months = 12 - current + targetMonth
		year++
	}
	weeks := max(daysBetween(now, year, time.Month(targetMonth), 1)/7, 0)

	window.TargetMonth = &targetMonth
	window.MonthsToPrepare = &months
	window.WeeksToPrepare = &weeks
	window.PreparationStatus = preparationStatus(months)
	window.RecommendedActions = recommendedActions(months)

	logger.Debug().
		Int("semester", semester).
		Int("target_month", targetMonth).
		Int("months", months).
		Int("weeks", weeks).
		Msg("preparation window calculated")

	return window, nil
}

// daysBetween counts calendar days from now's date to the given date.
// Both are placed in UTC so a DST change in now's zone cannot shorten a day.
func daysBetween(now time.Time, year int, month time.Month, day int) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func preparationStatus(months int) string {
	switch {
	case months == 0:
		return "Application window is NOW - Apply immediately!"
	case months == 1:
		return "Application window opens next month - Final preparations!"
	case months == 2:
		return fmt.Sprintf("Application window opens in %d months - Intensive preparation phase", months)
	default:
		return fmt.Sprintf("You have %d months to prepare - Good time to build skills", months)
	}
}

func recommendedActions(months int) []string {
	switch {
	case months <= 1:
		return slices.Clone(interviewActions)
	case months <= 3:
		return slices.Clone(portfolioActions)
	default:
		return slices.Clone(longHorizonActions)
	}
}
