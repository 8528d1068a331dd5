package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "raidroster",
		Short: "CLI tool for the raid roster API",
		Long: `raidroster drives the roster JSON API the same way a chat transport does.

It can schedule and close events, send role signals on behalf of users,
show the rendered roster and stream live roster updates.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: RAIDROSTER_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Transport token (env: RAIDROSTER_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: RAIDROSTER_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	rootCmd.AddCommand(newEventCmd())
	rootCmd.AddCommand(newRosterCmd())
	rootCmd.AddCommand(newActionsCmd())
	rootCmd.AddCommand(newSignalCmd())
	rootCmd.AddCommand(newTemplatesCmd())
	rootCmd.AddCommand(newStreamCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newHashTokenCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
