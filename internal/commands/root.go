// Package commands is the catalog command line: serve, migrate, seed and
// events tail.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command. Without a subcommand it serves.
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Product and user catalog API",
	Long: `Catalog serves products and users over REST (/api/v1) and GraphQL
(/graphql), with GraphQL subscriptions streamed as Server-Sent Events.

Configuration is read from environment variables, optionally overlaid on a
config.yaml in the working directory or the file given with --config.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command until it returns or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (default ./config.yaml when present)")
}

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.Log, cfg.App.Version)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
