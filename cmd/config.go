package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/internly/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
	// config commands must work even when the database, the cache or the
	// config file itself is broken
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(w, config.AppConfig)
		}

		fmt.Fprintln(w, titleStyle.Render("Configuration"))
		field(w, "Config File", config.GetConfigPath())
		for _, key := range config.Keys {
			value := config.Get(key)
			if key == "redis_password" && value != "" {
				value = "✓ Configured"
			}
			field(w, key, value)
		}
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  internly config set --key cache_backend --value redis
  internly config set --key redis_addr --value localhost:6379
  internly config set --key workers --value 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" {
			return fmt.Errorf("--key is required (one of: %s)", strings.Join(config.Keys, ", "))
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("updating config: %w", err)
		}
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("reloading config: %w", err)
		}

		cmd.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
	_ = setConfigCmd.MarkFlagRequired("key")
}
