package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/khrees2412/internly/pkg/models"
	"github.com/spf13/cobra"
)

var listingCmd = &cobra.Command{
	Use:     "listing",
	Aliases: []string{"listings"},
	Short:   "Manage internship listings",
	Long:    "Add, import, fetch, list, view, and remove internship listings",
}

var addListingCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a listing manually",
	Example: `  internly listing add --title "Backend Intern" --company "TechCorp Pvt Ltd" \
    --domain techcorp.com --platform LinkedIn --stipend "₹15,000/month" \
    --required "Python,Django,SQL" --responsibility "Build REST APIs for the billing service"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		l := &models.InternshipListing{}
		l.Title, _ = flags.GetString("title")
		l.Company, _ = flags.GetString("company")
		l.CompanyDomain, _ = flags.GetString("domain")
		l.Platform, _ = flags.GetString("platform")
		l.Location, _ = flags.GetString("location")
		l.Duration, _ = flags.GetString("duration")
		l.Stipend, _ = flags.GetString("stipend")
		l.SourceURL, _ = flags.GetString("url")
		l.RequiredSkills, _ = flags.GetStringSlice("required")
		l.PreferredSkills, _ = flags.GetStringSlice("preferred")
		l.Responsibilities, _ = flags.GetStringArray("responsibility")

		if l.ApplicationDeadline, err = dateFlag(cmd, "deadline"); err != nil {
			return err
		}
		if l.StartDate, err = dateFlag(cmd, "start"); err != nil {
			return err
		}

		if err := a.AddListing(cmd.Context(), l); err != nil {
			return err
		}
		cmd.Printf("✓ Listing added: %s at %s (ID: %s)\n", l.Title, l.Company, l.ID)
		return nil
	},
}

var importListingCmd = &cobra.Command{
	Use:     "import <file.json>",
	Short:   "Import listings from a JSON file",
	Args:    cobra.ExactArgs(1),
	Example: `  internly listing import listings.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		added, rejected, err := a.ImportListings(cmd.Context(), f)
		if err != nil {
			return err
		}

		cmd.Printf("✓ Imported %d listing(s)\n", len(added))
		for _, r := range rejected {
			cmd.Printf("  %s entry %d: %v\n", errorStyle.Render("✗"), r.Index, r.Err)
		}
		return nil
	},
}

var fetchListingCmd = &cobra.Command{
	Use:     "fetch <url>",
	Short:   "Fetch a listing page in a headless browser and store it",
	Args:    cobra.ExactArgs(1),
	Example: `  internly listing fetch https://careers.techcorp.com/jobs/42
  internly listing fetch --platform LinkedIn https://careers.techcorp.com/jobs/42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		platform, _ := cmd.Flags().GetString("platform")
		cmd.Printf("Fetching listing from %s...\n", args[0])
		l, err := a.FetchListing(cmd.Context(), args[0], platform)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Listing added: %s at %s (ID: %s)\n", l.Title, l.Company, l.ID)
		return nil
	},
}

var listListingsCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		listings, err := a.Listings(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), listings)
		}
		if len(listings) == 0 {
			cmd.Println("No listings yet. Add one with 'internly listing add' or 'internly listing import'.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Listings (%d)", len(listings))))
		for _, l := range listings {
			fmt.Fprintf(w, "%s  %s %s %s\n",
				mutedStyle.Render(l.ID[:min(8, len(l.ID))]),
				labelStyle.Render(l.Title),
				mutedStyle.Render("at"),
				valueStyle.Render(l.Company))
		}
		return nil
	},
}

var showListingCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		l, err := a.Listing(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), l)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render(l.Title))
		field(w, "ID", l.ID)
		field(w, "Company", l.Company)
		if l.CompanyDomain != "" {
			field(w, "Domain", l.CompanyDomain)
		}
		if l.Platform != "" {
			field(w, "Platform", l.Platform)
		}
		if l.Location != "" {
			field(w, "Location", l.Location)
		}
		if l.Duration != "" {
			field(w, "Duration", l.Duration)
		}
		if l.Stipend != "" {
			field(w, "Stipend", l.Stipend)
		}
		if l.ApplicationDeadline != nil {
			field(w, "Apply By", l.ApplicationDeadline.Format("2 Jan 2006"))
		}
		field(w, "Required Skills", joinOrNone(l.RequiredSkills))
		field(w, "Preferred Skills", joinOrNone(l.PreferredSkills))
		if len(l.Responsibilities) > 0 {
			fmt.Fprintln(w, labelStyle.Render("Responsibilities:"))
			for _, r := range l.Responsibilities {
				fmt.Fprintf(w, "  • %s\n", strings.TrimSpace(r))
			}
		}
		if l.StartDate != nil {
			field(w, "Starts", l.StartDate.Format("2 Jan 2006"))
		}
		if l.SourceURL != "" {
			field(w, "Source", l.SourceURL)
		}
		return nil
	},
}

var removeListingCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a listing and its stored results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := a.RemoveListing(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("✓ Listing %s removed\n", args[0])
		return nil
	},
}

func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD: %w", name, err)
	}
	return &t, nil
}

func init() {
	rootCmd.AddCommand(listingCmd)
	listingCmd.AddCommand(addListingCmd)
	listingCmd.AddCommand(importListingCmd)
	listingCmd.AddCommand(fetchListingCmd)
	listingCmd.AddCommand(listListingsCmd)
	listingCmd.AddCommand(showListingCmd)
	listingCmd.AddCommand(removeListingCmd)

	f := addListingCmd.Flags()
	f.String("title", "", "Listing title")
	f.String("company", "", "Company name")
	f.String("domain", "", "Company domain or contact email domain")
	f.String("platform", "", "Where the listing was found")
	f.String("location", "", "Location")
	f.String("duration", "", "Duration, e.g. \"6 months\"")
	f.String("stipend", "", "Stipend as advertised")
	f.String("url", "", "Source URL")
	f.String("deadline", "", "Application deadline (YYYY-MM-DD)")
	f.String("start", "", "Start date (YYYY-MM-DD)")
	f.StringSlice("required", nil, "Comma-separated required skills")
	f.StringSlice("preferred", nil, "Comma-separated preferred skills")
	f.StringArray("responsibility", nil, "A responsibility (repeatable)")
	_ = addListingCmd.MarkFlagRequired("title")
	fetchListingCmd.Flags().String("platform", "", "Where you found the listing (e.g. LinkedIn)")
	_ = addListingCmd.MarkFlagRequired("company")
}
