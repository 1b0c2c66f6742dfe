package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/backfill"
	"github.com/beachwatch/pcbflags/internal/csvlog"
	"github.com/beachwatch/pcbflags/internal/fetch"
	"github.com/beachwatch/pcbflags/internal/flags"
	"github.com/beachwatch/pcbflags/internal/live"
	"github.com/beachwatch/pcbflags/internal/logging"
)

// newScrapeCmd creates and configures the 'scrape' subcommand.
func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Logs the flag flying right now",
		Long: `Fetches the official beach alerts iframe (falling back to the beach
safety page), extracts and normalizes the current flag, and inserts or
updates today's row in the daily CSV. Safe to run repeatedly; reruns on the
same local date replace that date's row.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScrape(cmd.Context())
		},
	}
}

func runScrape(ctx context.Context) error {
	logger := logging.L

	httpClient, err := fetch.NewClient(fetch.Config{
		UserAgent: viper.GetString("http.user_agent"),
		Timeout:   viper.GetDuration("http.timeout"),
	}, logger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	scraper := live.NewScraper(httpClient, flags.DefaultRules(), []string{
		viper.GetString("sources.alerts_url"),
		viper.GetString("sources.safety_url"),
	}, logger)

	reading, err := scraper.Current(ctx)
	if err != nil {
		return err
	}

	resolver := backfill.NewResolver(viper.GetString("location.timezone"), logger)
	now := clockwork.NewRealClock().Now().UTC().Truncate(time.Second)

	path := viper.GetString("output.daily_csv")
	action, err := csvlog.UpsertDaily(path, csvlog.DailyRow{
		DateLocal:      resolver.CalendarDate(now),
		FlagText:       reading.FlagText,
		NormalizedFlag: reading.NormalizedFlag,
		SourceURL:      reading.SourceURL,
		FetchedAtUTC:   now.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("update daily log: %w", err)
	}

	logger.Info("Daily flag recorded",
		zap.String("action", string(action)),
		zap.String("date_local", resolver.CalendarDate(now)),
		zap.String("flag", reading.FlagText),
		zap.String("normalized", reading.NormalizedFlag),
		zap.String("source", reading.SourceURL),
	)
	fmt.Printf("%s: %s (%s) from %s\n", action, reading.FlagText, orNA(reading.NormalizedFlag), reading.SourceURL)
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
