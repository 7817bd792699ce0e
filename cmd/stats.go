package cmd

import (
	"fmt"

	"github.com/khrees2412/internly/pkg/models"
	"github.com/spf13/cobra"
)

var statusOrder = []models.VerificationStatus{
	models.StatusVerified,
	models.StatusUseCaution,
	models.StatusPotentialScam,
	models.StatusPending,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize stored listings by verification status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		s, err := a.Summarize(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(w, s)
		}
		if s.Total == 0 {
			cmd.Println("No listings yet. Add one with 'internly listing add' or 'internly listing import'.")
			return nil
		}

		fmt.Fprintln(w, titleStyle.Render("Listing Statistics"))
		field(w, "Total Listings", s.Total)
		for _, status := range statusOrder {
			n := s.ByStatus[status]
			pct := float64(n) / float64(s.Total) * 100
			fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", statusBadge(status), n, pct)
		}
		if pending := s.ByStatus[models.StatusPending]; pending > 0 {
			fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("\nRun 'internly verify --all' to check %d unverified listing(s).", pending)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
