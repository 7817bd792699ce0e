package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/internly/internal/matcher"
	"github.com/khrees2412/internly/pkg/models"
	"github.com/spf13/cobra"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage your skills",
	Long:  "Add, list, and remove skills on your profile",
}

var addSkillCmd = &cobra.Command{
	Use:   "add <skill-name>...",
	Short: "Add one or more skills",
	Args:  cobra.MinimumNArgs(1),
	Example: `  internly skill add Go
  internly skill add "REST API" Docker`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSkills(cmd, func(skills []string) []string {
			return append(skills, args...)
		})
	},
}

var removeSkillCmd = &cobra.Command{
	Use:   "remove <skill-name>",
	Short: "Remove a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := matcher.NormalizeSkill(args[0])
		return updateSkills(cmd, func(skills []string) []string {
			kept := skills[:0:0]
			for _, s := range skills {
				if matcher.NormalizeSkill(s) != target {
					kept = append(kept, s)
				}
			}
			return kept
		})
	},
}

var listSkillsCmd = &cobra.Command{
	Use:   "list",
	Short: "List your skills with their difficulty tier",
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
			return writeJSON(cmd.OutOrStdout(), p.Skills)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Skills (%d)", len(p.Skills))))
		for _, s := range p.Skills {
			fmt.Fprintf(w, "  • %s %s\n", s, mutedStyle.Render("("+strings.ToLower(string(matcher.SkillDifficulty(s)))+")"))
		}
		return nil
	},
}

func updateSkills(cmd *cobra.Command, edit func([]string) []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	p, err := a.Profile(ctx)
	if err != nil {
		return err
	}
	before := len(p.Skills)

	updated, err := models.NewStudentProfile(p.ID, p.Semester, edit(p.Skills), p.PreferredRoles, p.TargetCompanies)
	if err != nil {
		return err
	}
	if err := a.SaveProfile(ctx, updated); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	cmd.Printf("✓ Skills updated (%d → %d)\n", before, len(updated.Skills))
	return nil
}

func init() {
	rootCmd.AddCommand(skillCmd)
	skillCmd.AddCommand(addSkillCmd)
	skillCmd.AddCommand(removeSkillCmd)
	skillCmd.AddCommand(listSkillsCmd)
}
