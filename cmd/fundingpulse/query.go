package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"fundingpulse/internal/config"
	api "fundingpulse/pkg/contracts/api/v1"
)

func newQueryCmd(c *cli) *cobra.Command {
	var (
		stage string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run the SQL stage query and print JSON",
		Long: `Load the raw dataset into the in-memory SQL store and print the deals of one
funding stage, highest amount first. Rows with no amount sort last.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stage == "" {
				stage = c.cfg.Dataset.QueryStage
			}
			if limit == 0 {
				limit = c.cfg.Dataset.QueryLimit
			}
			if limit < config.MinQueryLimit || limit > config.MaxQueryLimit {
				return fmt.Errorf("limit must be between %d and %d", config.MinQueryLimit, config.MaxQueryLimit)
			}

			logger, closeLog, err := c.commandLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := commandContext(cmd.Context())
			svc, _, err := c.loadService(ctx, logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			deals, err := svc.StageDeals(ctx, stage, limit)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(api.NewListResponse(deals, len(deals)))
		},
	}

	cmd.Flags().StringVarP(&stage, "stage", "s", "", "funding stage (defaults to dataset.query_stage)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum rows (defaults to dataset.query_limit)")
	return cmd
}
