package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fundingpulse/internal/config"
	"fundingpulse/internal/dataprocessing"
	"fundingpulse/internal/exporter"
	"fundingpulse/internal/validation"
	"fundingpulse/pkg/contracts/domain"
)

type reportFlags struct {
	input      string
	out        string
	region     string
	noWorkbook bool
}

func newReportCmd(c *cli) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export every view as CSV files and an XLSX workbook",
		Long: `Load, clean and analyze the dataset, then write one CSV per view into the
output directory, plus funding_report.xlsx with one sheet per view.

The run aborts when the amount column is missing or no rows survive
cleaning. A failing stage query only skips seed_deals.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.input != "" {
				c.cfg.Dataset.Path = flags.input
			}
			if flags.out != "" {
				c.cfg.Report.OutputDir = flags.out
			}
			if flags.noWorkbook {
				c.cfg.Report.Workbook = false
			}

			logger, closeLog, err := c.commandLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			return runReport(cmd.Context(), c, flags.region, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "dataset file (overrides dataset.path)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory (overrides report.output_dir)")
	cmd.Flags().StringVar(&flags.region, "region", domain.RegionAll, "region for recent_deals.csv")
	cmd.Flags().BoolVar(&flags.noWorkbook, "no-workbook", false, "skip the XLSX workbook")
	return cmd
}

func runReport(ctx context.Context, c *cli, region string, out io.Writer, logger *slog.Logger) error {
	ctx = commandContext(ctx)

	svc, paths, err := c.loadService(ctx, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(paths.ReportsDir); err != nil {
		return err
	}

	stats := svc.CleanStats()
	fmt.Fprintf(out, "Loaded %s rows from %s\n", humanize.Comma(int64(stats.InitialRows)), filepath.Base(paths.DatasetFile))
	fmt.Fprintf(out, "Dropped %s rows with a missing or invalid amount\n", humanize.Comma(int64(stats.DroppedAmount)))
	fmt.Fprintf(out, "Dropped %s rows with an invalid date\n", humanize.Comma(int64(stats.DroppedDate)))
	fmt.Fprintf(out, "Analyzing %s valid funding deals\n", humanize.Comma(int64(stats.FinalRows)))

	report := svc.Report(ctx, reportOptions(c.cfg.Report, region))

	deals, err := svc.StageDeals(ctx, c.cfg.Dataset.QueryStage, c.cfg.Dataset.QueryLimit)
	if err != nil {
		logger.WarnContext(ctx, "stage query skipped",
			slog.String("stage", c.cfg.Dataset.QueryStage),
			slog.String("error", err.Error()))
		deals = nil
	} else if deals == nil {
		deals = []domain.StageDeal{}
	}

	writer := exporter.NewReportWriter(paths.ReportsDir, exporter.ReportFormat{
		BOMPrefix: c.cfg.Report.BOMPrefix,
		Workbook:  c.cfg.Report.Workbook,
	}, logger)
	files, err := writer.Write(ctx, report, deals)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Total funding %s across %s deals\n",
		dataprocessing.FormatUSD(report.Metrics.Total), humanize.Comma(int64(report.Metrics.Count)))
	fmt.Fprintf(out, "Wrote %d files to %s\n", len(files), paths.ReportsDir)
	for _, f := range files {
		fmt.Fprintf(out, "  %s\n", filepath.Base(f))
	}
	return nil
}

// reportOptions overlays the configured table sizes on the dashboard
// defaults. Unset sizes keep the default.
func reportOptions(cfg config.ReportConfig, region string) dataprocessing.ReportOptions {
	opts := dataprocessing.DefaultReportOptions()
	if cfg.TopRegions > 0 {
		opts.TopRegions = cfg.TopRegions
	}
	if cfg.TopVerticals > 0 {
		opts.TopVerticals = cfg.TopVerticals
	}
	if cfg.LargestRounds > 0 {
		opts.LargestRounds = cfg.LargestRounds
	}
	if region != "" {
		opts.Region = region
	}
	return opts
}
