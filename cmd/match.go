package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:     "match <listing-id>",
	Short:   "Compare your skills with a listing",
	Long:    "Show matching and missing skills for a listing, with a learning path for each gap",
	Args:    cobra.ExactArgs(1),
	Example: `  internly match 3f2a9c1e-...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		m, err := a.MatchListing(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(w, m)
		}

		fmt.Fprintln(w, titleStyle.Render("Skill Match"))
		field(w, "Match", matchStyle(m.MatchPercentage).Render(fmt.Sprintf("%d%%", m.MatchPercentage)))
		field(w, "You Have", joinOrNone(m.MatchingSkills))
		field(w, "Missing", joinOrNone(m.MissingSkills))
		if len(m.MatchingPreferred) > 0 {
			field(w, "Bonus Skills", strings.Join(m.MatchingPreferred, ", "))
		}

		if len(m.LearningPath) == 0 {
			return nil
		}
		fmt.Fprintln(w, titleStyle.Render("Learning Path"))
		for i, item := range m.LearningPath {
			fmt.Fprintf(w, "%d. %s %s\n", i+1, labelStyle.Render(item.Skill),
				mutedStyle.Render(fmt.Sprintf("(%s priority, %s, %s)", item.Priority, item.Difficulty, item.EstimatedTime)))
			for _, r := range item.Resources {
				fmt.Fprintf(w, "   • %s\n", r)
			}
		}
		return nil
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank stored listings by how well they match your skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		ranked, err := a.RankForProfile(cmd.Context())
		if err != nil {
			return err
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && limit < len(ranked) {
			ranked = ranked[:limit]
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(w, ranked)
		}
		if len(ranked) == 0 {
			cmd.Println("No listings to rank.")
			return nil
		}

		fmt.Fprintln(w, titleStyle.Render("Best Matches"))
		for i, r := range ranked {
			fmt.Fprintf(w, "%2d. %s  %s %s %s\n", i+1,
				matchStyle(r.MatchPercentage).Render(fmt.Sprintf("%3d%%", r.MatchPercentage)),
				labelStyle.Render(r.Listing.Title),
				mutedStyle.Render("at"),
				valueStyle.Render(r.Listing.Company))
			if len(r.MissingSkills) > 0 {
				fmt.Fprintf(w, "     %s\n", mutedStyle.Render("missing: "+strings.Join(r.MissingSkills, ", ")))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().IntP("limit", "n", 0, "Show only the top N listings")
}
