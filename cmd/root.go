package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/internly/internal/app"
	"github.com/khrees2412/internly/internal/logger"
	"github.com/spf13/cobra"
)

var (
	application *app.App
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "internly",
	Short: "Internship verification and matching CLI",
	Long: `Internly helps students find internships worth applying to.
It flags likely scam listings, scores how well your skills match each role,
and tells you when to apply based on your semester.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		application = a
		cmd.SetContext(app.WithApp(cmd.Context(), a))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)

	if application != nil {
		if cerr := application.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("failed to close app")
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		cancel()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

// appFrom returns the App installed by the root pre-run hook
func appFrom(cmd *cobra.Command) (*app.App, error) {
	a := app.FromContext(cmd.Context())
	if a == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return a, nil
}
