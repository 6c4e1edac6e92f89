package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"fundingpulse/internal/config"
	apperrors "fundingpulse/internal/errors"
	"fundingpulse/internal/infrastructure"
	"fundingpulse/internal/services"
	"fundingpulse/internal/validation"
	"fundingpulse/pkg/contracts"
)

// cli holds state shared by every subcommand
type cli struct {
	configPath string
	logLevel   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "fundingpulse",
		Short: "Tech funding analytics",
		Long: `Funding Pulse loads a tech-funding dataset (CSV or XLSX), cleans it and
derives the dashboard views: headline metrics, top regions and verticals,
stage distributions, deal tables and a SQL stage query.

Available subcommands:
  serve   - Serve the views as a JSON API
  report  - Export every view as CSV files and an XLSX workbook
  query   - Run the SQL stage query and print JSON
  config  - Inspect configuration
  version - Print version information`,
		SilenceUsage:  true,
		Version:       contracts.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to config.yaml (defaults to the first of config.yaml, configs/config.yaml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(c),
		newReportCmd(c),
		newQueryCmd(c),
		newConfigCmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	c.cfg = cfg
	return nil
}

// commandContext tags a one-shot run with a trace ID for log correlation.
func commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return infrastructure.EnsureTraceID(ctx)
}

// commandLogger builds a logger for one-shot commands. Console output goes
// to w so that stdout stays reserved for results.
func (c *cli) commandLogger(w io.Writer) (*slog.Logger, func(), error) {
	logger, closer, err := infrastructure.NewLogger(c.cfg.Logging, w)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() {
		if closer != nil {
			closer.Close()
		}
	}, nil
}

// loadService resolves and validates the configured dataset, then loads it.
// The caller owns the returned service.
func (c *cli) loadService(ctx context.Context, logger *slog.Logger) (*services.FundingService, *config.Paths, error) {
	paths, err := c.cfg.ResolvePaths()
	if err != nil {
		return nil, nil, err
	}
	if err := validation.NewFileValidator(logger).ValidateDatasetFile(paths.DatasetFile); err != nil {
		return nil, nil, err
	}

	dataset := c.cfg.Dataset
	dataset.Path = paths.DatasetFile
	svc, err := services.LoadFundingService(ctx, services.LoadOptions{Dataset: dataset, Logger: logger})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Fatal() {
			logger.ErrorContext(ctx, "analysis aborted", slog.String("error", err.Error()))
		}
		return nil, nil, err
	}
	return svc, paths, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}
