package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST and GraphQL server",
	Long: `Start the REST and GraphQL server on APP_PORT.

The database schema is migrated on startup unless DATABASE_AUTO_MIGRATE=false.
Set REDIS_URL to cache records in Redis and RABBITMQ_URL to mirror every
domain event to the EVENTS_EXCHANGE topic exchange.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	server, err := NewServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := server.Close(); err != nil {
			logger.Error("failed to release resources", "error", err)
		}
	}()

	return server.Run(ctx)
}
