package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fundingpulse/internal/app"
	"fundingpulse/internal/infrastructure"
)

func newServeCmd(c *cli) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the funding views as a JSON API",
		Long: `Load the configured dataset and serve its views under /api/funding.

Health checks are served under /api/health and Prometheus metrics at
/metrics. The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				c.cfg.Server.Port = port
			}
			return runServe(cmd.Context(), c)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

func runServe(ctx context.Context, c *cli) error {
	if c.cfg.Logging.Output != "console" {
		paths, err := c.cfg.ResolvePaths()
		if err != nil {
			return err
		}
		if err := paths.EnsureDirectories(); err != nil {
			return err
		}
	}

	logger, err := infrastructure.InitializeLogger(c.cfg.Logging)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(ctx, c.cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to start application", slog.String("error", err.Error()))
		return err
	}
	return application.Run(ctx)
}
