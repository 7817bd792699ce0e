// Package calendar maps an academic semester onto the internship
// application calendar.
package calendar

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/khrees2412/internly/internal/logger"
	"github.com/khrees2412/internly/pkg/models"
)

type semesterPlan struct {
	focus            string
	description      string
	recommendation   string
	applyWindow      string
	internshipPeriod string
	applyMonths      []int
	internshipMonths []int
}

func (p semesterPlan) skillBuilding() bool {
	return len(p.applyMonths) == 0
}

var allMonths = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

var summerPlan = semesterPlan{
	focus:            "Summer Internships",
	applyWindow:      "Jan-Mar",
	internshipPeriod: "May-Jul",
	applyMonths:      []int{1, 2, 3},
	internshipMonths: []int{5, 6, 7},
	recommendation:   "Apply for Summer Internships between January and March for May-July positions.",
}

var winterPlan = semesterPlan{
	focus:            "Winter/Summer Internships",
	applyWindow:      "Aug-Oct",
	internshipPeriod: "Dec-Jan",
	applyMonths:      []int{8, 9, 10},
	internshipMonths: []int{12, 1},
	recommendation:   "Apply for Winter Internships between August and October for December-January positions.",
}

func withDescription(p semesterPlan, description string) semesterPlan {
	p.description = description
	return p
}

var semesterPlans = map[int]semesterPlan{
	1: {
		focus:          "Skill Building",
		description:    "Focus on building foundational skills and academic performance",
		recommendation: "Too early for internships. Focus on coursework and skill development.",
	},
	2: {
		focus:          "Skill Building",
		description:    "Continue skill development and explore areas of interest",
		recommendation: "Too early for internships. Build projects and learn new technologies.",
	},
	3: withDescription(summerPlan, "Apply for summer internships to gain industry experience"),
	4: withDescription(summerPlan, "Prime time for summer internship applications"),
	5: withDescription(winterPlan, "Apply for winter internships or prepare for next summer"),
	6: withDescription(winterPlan, "Continue applying for winter internships or summer opportunities"),
	7: {
		focus:            "Final Year Internships",
		description:      "Apply for final year internships and pre-placement opportunities",
		applyWindow:      "Jul-Sep",
		internshipPeriod: "Jan-Apr",
		applyMonths:      []int{7, 8, 9},
		internshipMonths: []int{1, 2, 3, 4},
		recommendation:   "Apply for Final Year Internships between July and September for January-April positions.",
	},
	8: {
		focus:            "Pre-Placement",
		description:      "Focus on placement preparation and final projects",
		applyWindow:      "Ongoing",
		internshipPeriod: "Flexible",
		applyMonths:      allMonths,
		internshipMonths: allMonths,
		recommendation:   "Focus on placement preparation. Apply for short-term or flexible internships as needed.",
	},
}

func planFor(semester int) (semesterPlan, error) {
	if err := models.ValidateSemester(semester); err != nil {
		return semesterPlan{}, err
	}
	return semesterPlans[semester], nil
}

// CurrentMonth is the calendar month of now, for callers without an explicit month
func CurrentMonth(now time.Time) int {
	return int(now.Month())
}

// GetCalendarForSemester builds the calendar for a semester as seen from
// currentMonth. Out-of-range semesters and months are rejected with a
// *models.ValidationError; nothing is clamped.
func GetCalendarForSemester(semester, currentMonth int) (models.CalendarWindow, error) {
	plan, err := planFor(semester)
	if err != nil {
		return models.CalendarWindow{}, err
	}
	if err := models.ValidateMonth(currentMonth); err != nil {
		return models.CalendarWindow{}, err
	}

	deadlines, err := GetUpcomingDeadlines(semester, currentMonth)
	if err != nil {
		return models.CalendarWindow{}, err
	}

	window := models.CalendarWindow{
		Semester:          semester,
		Focus:             plan.focus,
		Description:       plan.description,
		Recommendation:    plan.recommendation,
		ApplyWindow:       plan.applyWindow,
		InternshipPeriod:  plan.internshipPeriod,
		ApplyMonths:       slices.Clone(plan.applyMonths),
		InternshipMonths:  slices.Clone(plan.internshipMonths),
		CurrentStatus:     currentStatus(plan, currentMonth),
		UpcomingDeadlines: deadlines,
	}

	logger.Debug().
		Int("semester", semester).
		Int("month", currentMonth).
		Str("status", window.CurrentStatus).
		Msg("calendar generated")

	return window, nil
}

func currentStatus(plan semesterPlan, month int) string {
	if plan.skillBuilding() {
		return "Focus on skill development"
	}
	if slices.Contains(plan.applyMonths, month) {
		return "Application window is OPEN - Apply now!"
	}
	if slices.Contains(plan.internshipMonths, month) {
		return "Internship period - Focus on current internship or prepare for next cycle"
	}
	n := MonthsUntilWindow(month, plan.applyMonths)
	if n <= 2 {
		return fmt.Sprintf("Application window opens in %d month(s) - Start preparing!", n)
	}
	return fmt.Sprintf("Preparation phase - %d month(s) until application window", n)
}

// MonthsUntilWindow counts months from current to the next apply month,
// wrapping into next year when no apply month is left this year.
// It returns 0 when there are no apply months.
func MonthsUntilWindow(current int, applyMonths []int) int {
	if len(applyMonths) == 0 {
		return 0
	}
	next := 0
	for _, m := range applyMonths {
		if m > current && (next == 0 || m < next) {
			next = m
		}
	}
	if next != 0 {
		return next - current
	}
	return 12 - current + slices.Min(applyMonths)
}

// GetUpcomingDeadlines lists when the window opens, when it closes and when
// the internship starts, nearest first. Months before currentMonth count as
// next year's.
func GetUpcomingDeadlines(semester, currentMonth int) ([]models.Deadline, error) {
	plan, err := planFor(semester)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateMonth(currentMonth); err != nil {
		return nil, err
	}

	deadlines := []models.Deadline{}
	if plan.skillBuilding() {
		return deadlines, nil
	}

	focus := strings.ToLower(plan.focus)
	first, last := slices.Min(plan.applyMonths), slices.Max(plan.applyMonths)
	deadlines = append(deadlines,
		newDeadline("Application Window Opens", first, "Start applying for "+focus),
		newDeadline("Application Window Closes", last, "Last month to apply for "+focus),
	)
	if len(plan.internshipMonths) > 0 {
		start := slices.Min(plan.internshipMonths)
		deadlines = append(deadlines, newDeadline("Internship Starts", start, "Expected start date for "+focus))
	}

	distance := func(m int) int {
		if m < currentMonth {
			return m + 12
		}
		return m
	}
	sort.SliceStable(deadlines, func(i, j int) bool {
		return distance(deadlines[i].MonthNumber) < distance(deadlines[j].MonthNumber)
	})
	return deadlines, nil
}

func newDeadline(kind string, month int, description string) models.Deadline {
	return models.Deadline{
		Type:        kind,
		Month:       time.Month(month).String(),
		MonthNumber: month,
		Description: description,
	}
}
