package calendar

import (
	"testing"
	"time"

	"github.com/khrees2412/internly/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCalendarForSemester_Status(t *testing.T) {
	tests := []struct {
		name     string
		semester int
		month    int
		want     string
	}{
		{"skill building", 1, 6, "Focus on skill development"},
		{"second semester", 2, 1, "Focus on skill development"},
		{"window open", 4, 2, "Application window is OPEN - Apply now!"},
		{"internship period", 5, 12, "Internship period - Focus on current internship or prepare for next cycle"},
		{"opens soon wraps year", 3, 11, "Application window opens in 2 month(s) - Start preparing!"},
		{"opens next month", 7, 6, "Application window opens in 1 month(s) - Start preparing!"},
		{"long wait wraps year", 5, 11, "Preparation phase - 9 month(s) until application window"},
		{"after window", 3, 4, "Preparation phase - 9 month(s) until application window"},
		{"pre-placement always open", 8, 11, "Application window is OPEN - Apply now!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal, err := GetCalendarForSemester(tt.semester, tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.semester, cal.Semester)
			assert.Equal(t, tt.want, cal.CurrentStatus)
		})
	}
}

func TestGetCalendarForSemester_Table(t *testing.T) {
	cal, err := GetCalendarForSemester(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "Skill Building", cal.Focus)
	assert.Equal(t, "Too early for internships. Focus on coursework and skill development.", cal.Recommendation)
	assert.Empty(t, cal.ApplyWindow)
	assert.Empty(t, cal.ApplyMonths)
	assert.NotNil(t, cal.UpcomingDeadlines)
	assert.Empty(t, cal.UpcomingDeadlines)

	cal, err = GetCalendarForSemester(6, 3)
	require.NoError(t, err)
	assert.Equal(t, "Winter/Summer Internships", cal.Focus)
	assert.Equal(t, "Continue applying for winter internships or summer opportunities", cal.Description)
	assert.Equal(t, "Aug-Oct", cal.ApplyWindow)
	assert.Equal(t, "Dec-Jan", cal.InternshipPeriod)
	assert.Equal(t, []int{8, 9, 10}, cal.ApplyMonths)
	assert.Equal(t, []int{12, 1}, cal.InternshipMonths)

	cal, err = GetCalendarForSemester(8, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ongoing", cal.ApplyWindow)
	assert.Equal(t, "Flexible", cal.InternshipPeriod)
	assert.Len(t, cal.ApplyMonths, 12)
}

func TestGetCalendarForSemester_DoesNotLeakTable(t *testing.T) {
	cal, err := GetCalendarForSemester(3, 1)
	require.NoError(t, err)
	cal.ApplyMonths[0] = 99

	again, err := GetCalendarForSemester(3, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, again.ApplyMonths)
}

func TestGetCalendarForSemester_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		semester int
		month    int
		field    string
	}{
		{"semester zero", 0, 5, "semester"},
		{"semester nine", 9, 5, "semester"},
		{"negative semester", -1, 5, "semester"},
		{"month zero", 3, 0, "month"},
		{"month thirteen", 3, 13, "month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetCalendarForSemester(tt.semester, tt.month)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrValidation)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)

			_, err = GetUpcomingDeadlines(tt.semester, tt.month)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestMonthsUntilWindow(t *testing.T) {
	tests := []struct {
		current int
		months  []int
		want    int
	}{
		{10, []int{1, 2, 3}, 3},
		{1, []int{1, 2, 3}, 1},
		{3, []int{1, 2, 3}, 10},
		{12, []int{1, 2, 3}, 1},
		{5, []int{8, 9, 10}, 3},
		{11, []int{8, 9, 10}, 9},
		{5, nil, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthsUntilWindow(tt.current, tt.months), "current=%d months=%v", tt.current, tt.months)
	}
}

func TestGetUpcomingDeadlines(t *testing.T) {
	deadlines, err := GetUpcomingDeadlines(4, 2)
	require.NoError(t, err)
	require.Len(t, deadlines, 3)

	assert.Equal(t, models.Deadline{
		Type:        "Application Window Closes",
		Month:       "March",
		MonthNumber: 3,
		Description: "Last month to apply for summer internships",
	}, deadlines[0])
	assert.Equal(t, models.Deadline{
		Type:        "Internship Starts",
		Month:       "May",
		MonthNumber: 5,
		Description: "Expected start date for summer internships",
	}, deadlines[1])
	assert.Equal(t, models.Deadline{
		Type:        "Application Window Opens",
		Month:       "January",
		MonthNumber: 1,
		Description: "Start applying for summer internships",
	}, deadlines[2])
}

func TestGetUpcomingDeadlines_WrapOrdering(t *testing.T) {
	deadlines, err := GetUpcomingDeadlines(5, 9)
	require.NoError(t, err)

	types := make([]string, len(deadlines))
	for i, d := range deadlines {
		types[i] = d.Type
	}
	assert.Equal(t, []string{"Application Window Closes", "Internship Starts", "Application Window Opens"}, types)
	assert.Equal(t, "Start applying for winter/summer internships", deadlines[2].Description)
}

func TestGetUpcomingDeadlines_AllInputs(t *testing.T) {
	for semester := models.MinSemester; semester <= models.MaxSemester; semester++ {
		for month := models.MinMonth; month <= models.MaxMonth; month++ {
			deadlines, err := GetUpcomingDeadlines(semester, month)
			require.NoError(t, err)

			if semester <= 2 {
				assert.Empty(t, deadlines)
				continue
			}
			require.Len(t, deadlines, 3)

			prev := 0
			for _, d := range deadlines {
				dist := d.MonthNumber
				if dist < month {
					dist += 12
				}
				assert.GreaterOrEqual(t, dist, prev, "semester=%d month=%d", semester, month)
				prev = dist
				assert.Equal(t, time.Month(d.MonthNumber).String(), d.Month)
			}
		}
	}
}

func TestCurrentMonth(t *testing.T) {
	assert.Equal(t, 10, CurrentMonth(time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)))
}
