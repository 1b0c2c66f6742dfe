// Package cmd defines and implements the CLI commands for the pcbflags
// executable.
package cmd

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/backfill"
	"github.com/beachwatch/pcbflags/internal/csvlog"
	"github.com/beachwatch/pcbflags/internal/fetch"
	"github.com/beachwatch/pcbflags/internal/flags"
	"github.com/beachwatch/pcbflags/internal/logging"
	"github.com/beachwatch/pcbflags/internal/wayback"
)

// newBackfillCmd creates and configures the 'backfill' subcommand.
func newBackfillCmd() *cobra.Command {
	var (
		fromYear int
		toYear   int
		months   []int
	)

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Reconstructs historical flag status from the Wayback Machine",
		Long: `Queries the Internet Archive's CDX index for daily snapshots of the
known flag pages across the requested year range, extracts and normalizes
the flag phrase from each day's best snapshot, and appends one row per day
to the historical CSV artifact. Days without a usable snapshot are skipped.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBackfill(cmd.Context(), fromYear, toYear, months)
		},
	}

	cmd.Flags().IntVar(&fromYear, "from-year", 0, "start year, e.g. 2022")
	cmd.Flags().IntVar(&toYear, "to-year", 0, "end year inclusive, e.g. 2025")
	cmd.Flags().IntSliceVar(&months, "months", nil, "comma list of months 1-12 to include, e.g. 5,6,7,8")
	_ = cmd.MarkFlagRequired("from-year")
	_ = cmd.MarkFlagRequired("to-year")

	return cmd
}

func runBackfill(ctx context.Context, fromYear, toYear int, months []int) error {
	cfg := backfill.LoadConfig(viper.GetViper())
	cfg.FromYear = fromYear
	cfg.ToYear = toYear
	cfg.Months = months
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("backfill config: %w", err)
	}

	engine, err := buildBackfillEngine(cfg, logging.L)
	if err != nil {
		return err
	}

	sum, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("run backfill: %w", err)
	}

	fmt.Printf("wrote %d day(s) to %s\n", sum.DaysWritten, cfg.HistoryCSV)
	return nil
}

func buildBackfillEngine(cfg backfill.Config, logger *zap.Logger) (*backfill.Engine, error) {
	httpClient, err := fetch.NewClient(fetch.Config{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	archive, err := wayback.NewClient(wayback.Config{
		CDXEndpoint:      cfg.CDXEndpoint,
		SnapshotEndpoint: cfg.SnapshotEndpoint,
	}, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("init archive client: %w", err)
	}

	writer, err := csvlog.NewHistoryWriter(cfg.HistoryCSV, logger)
	if err != nil {
		return nil, fmt.Errorf("init result writer: %w", err)
	}

	resolver := backfill.NewResolver(cfg.Timezone, logger)

	return backfill.NewEngine(
		cfg,
		archive,
		archive,
		flags.DefaultRules(),
		writer,
		resolver,
		clockwork.NewRealClock(),
		logger,
	), nil
}
