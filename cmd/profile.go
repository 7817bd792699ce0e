package cmd

import (
	"errors"
	"fmt"

	"github.com/khrees2412/internly/internal/app"
	"github.com/khrees2412/internly/pkg/models"
	"github.com/spf13/cobra"
)

const defaultProfileID = "default"

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your student profile",
	Long:  "Set the semester, skills and preferences used for matching and calendar advice",
}

var setProfileCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update your profile",
	Example: `  internly profile set --semester 5 --skills "Python,Django,SQL,Git"
  internly profile set --semester 6 --roles "Backend,Data" --companies "Flipkart,Razorpay"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		existing, err := a.Profile(ctx)
		if err != nil && !errors.Is(err, app.ErrNoProfile) {
			return err
		}

		semester, _ := cmd.Flags().GetInt("semester")
		skills, _ := cmd.Flags().GetStringSlice("skills")
		roles, _ := cmd.Flags().GetStringSlice("roles")
		companies, _ := cmd.Flags().GetStringSlice("companies")

		id := defaultProfileID
		if existing != nil {
			id = existing.ID
			if !cmd.Flags().Changed("semester") {
				semester = existing.Semester
			}
			if !cmd.Flags().Changed("skills") {
				skills = existing.Skills
			}
			if !cmd.Flags().Changed("roles") {
				roles = existing.PreferredRoles
			}
			if !cmd.Flags().Changed("companies") {
				companies = existing.TargetCompanies
			}
		} else if !cmd.Flags().Changed("semester") {
			return fmt.Errorf("--semester is required when creating a profile")
		}

		p, err := models.NewStudentProfile(id, semester, skills, roles, companies)
		if err != nil {
			return err
		}
		if err := a.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		cmd.Printf("✓ Profile saved (semester %d, %d skills)\n", p.Semester, len(p.Skills))
		return nil
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show",
	Short: "Display your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		p, err := a.Profile(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), p)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render("Student Profile"))
		field(w, "Semester", p.Semester)
		field(w, "Skills", joinOrNone(p.Skills))
		field(w, "Preferred Roles", joinOrNone(p.PreferredRoles))
		field(w, "Target Companies", joinOrNone(p.TargetCompanies))
		field(w, "Updated", p.UpdatedAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(setProfileCmd)
	profileCmd.AddCommand(showProfileCmd)

	setProfileCmd.Flags().Int("semester", 0, "Current semester (1-8)")
	setProfileCmd.Flags().StringSlice("skills", nil, "Comma-separated skills")
	setProfileCmd.Flags().StringSlice("roles", nil, "Comma-separated preferred roles")
	setProfileCmd.Flags().StringSlice("companies", nil, "Comma-separated target companies")
}
