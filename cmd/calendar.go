package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/khrees2412/internly/internal/calendar"
	"github.com/khrees2412/internly/pkg/models"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the internship calendar for your semester",
	Long: `Show when to apply and when internships run for a semester.
Uses the semester from your profile unless --semester is given.`,
	Example: `  internly calendar
  internly calendar --semester 5 --month 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		month := a.CurrentMonth()
		if flags.Changed("month") {
			month, _ = flags.GetInt("month")
		}

		var window models.CalendarWindow
		if flags.Changed("semester") {
			semester, _ := flags.GetInt("semester")
			window, err = calendar.GetCalendarForSemester(semester, month)
		} else {
			window, err = a.Calendar(cmd.Context(), month)
		}
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(w, window)
		}
		printCalendar(w, window)
		return nil
	},
}

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Show how long you have to prepare before applications open",
	Example: `  internly prepare
  internly prepare --target-month 6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		var target int
		if cmd.Flags().Changed("target-month") {
			target, _ = cmd.Flags().GetInt("target-month")
			if err := models.ValidateMonth(target); err != nil {
				return err
			}
		}
		prep, err := a.Preparation(cmd.Context(), time.Time{}, target)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(w, prep)
		}

		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Preparation - Semester %d", prep.Semester)))
		field(w, "Status", prep.PreparationStatus)
		if prep.TargetMonth != nil {
			field(w, "Target Month", time.Month(*prep.TargetMonth).String())
			field(w, "Months Left", *prep.MonthsToPrepare)
			field(w, "Weeks Left", *prep.WeeksToPrepare)
		}
		fmt.Fprintln(w, labelStyle.Render("Recommended Actions:"))
		for _, action := range prep.RecommendedActions {
			fmt.Fprintf(w, "  • %s\n", action)
		}
		return nil
	},
}

func printCalendar(w io.Writer, c models.CalendarWindow) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Semester %d - %s", c.Semester, c.Focus)))
	fmt.Fprintln(w, c.Description)
	fmt.Fprintln(w)
	field(w, "Now", c.CurrentStatus)
	if c.ApplyWindow != "" {
		field(w, "Apply", c.ApplyWindow)
	}
	if c.InternshipPeriod != "" {
		field(w, "Internship", c.InternshipPeriod)
	}
	field(w, "Recommendation", c.Recommendation)

	if len(c.UpcomingDeadlines) == 0 {
		return
	}
	fmt.Fprintln(w, titleStyle.Render("Upcoming"))
	for _, d := range c.UpcomingDeadlines {
		fmt.Fprintf(w, "%-10s %s %s\n", d.Month, labelStyle.Render(d.Type), mutedStyle.Render("- "+d.Description))
	}
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(prepareCmd)
	calendarCmd.Flags().Int("semester", 0, "Semester (1-8); defaults to your profile's")
	calendarCmd.Flags().Int("month", 0, "Month to evaluate (1-12); defaults to the current month")
	prepareCmd.Flags().Int("target-month", 0, "Month you plan to apply (1-12); defaults to your semester's window")
}
