package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/khrees2412/internly/pkg/models"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [listing-id]",
	Short: "Check a listing for signs of fraud",
	Long: `Score a listing's trustworthiness from its domain, platform, and red flags.
Results are stored; use --all to re-verify every stored listing.`,
	Example: `  internly verify 3f2a9c1e-...
  internly verify --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		if all == (len(args) == 1) {
			return fmt.Errorf("pass either a listing ID or --all")
		}

		w := cmd.OutOrStdout()
		if all {
			verified, err := a.VerifyAll(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(w, verified)
			}
			if len(verified) == 0 {
				cmd.Println("No listings to verify.")
				return nil
			}
			fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Verified %d listing(s)", len(verified))))
			for _, v := range verified {
				fmt.Fprintf(w, "%s  %3d  %s %s %s\n",
					statusBadge(v.Result.Status),
					v.Result.TrustScore,
					labelStyle.Render(v.Listing.Title),
					mutedStyle.Render("at"),
					valueStyle.Render(v.Listing.Company))
			}
			return nil
		}

		result, err := a.VerifyListing(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(w, result)
		}
		printVerification(w, result)
		return nil
	},
}

func printVerification(w io.Writer, r models.VerificationResult) {
	fmt.Fprintln(w, titleStyle.Render("Verification"))
	field(w, "Status", statusBadge(r.Status))
	field(w, "Trust Score", fmt.Sprintf("%d/100", r.TrustScore))
	field(w, "Official Domain", yesNo(r.Signals.OfficialDomain))
	field(w, "Known Platform", yesNo(r.Signals.KnownPlatform))

	if len(r.RedFlags) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Red Flags:"))
		for _, f := range r.RedFlags {
			fmt.Fprintf(w, "  %s %s\n", severityStyle(f.Severity).Render("["+string(f.Severity)+"]"), f.Description)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Notes)
}

func yesNo(b bool) string {
	if b {
		return "✓ yes"
	}
	return "✗ no"
}

func severityStyle(s models.Severity) lipgloss.Style {
	switch s {
	case models.SeverityHigh:
		return scamStyle
	case models.SeverityMedium:
		return cautionStyle
	default:
		return mutedStyle
	}
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Bool("all", false, "Re-verify every stored listing")
}
