package cmd

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beachwatch/pcbflags/internal/fetch"
	"github.com/beachwatch/pcbflags/internal/logging"
	"github.com/beachwatch/pcbflags/internal/surf"
)

// newSurfCmd creates and configures the 'surf' subcommand.
func newSurfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "surf",
		Short: "Logs the NWS surf-zone forecast",
		Long: `Fetches the National Weather Service surf-zone forecast text product
for the coastal zone covering Panama City Beach, parses the headline fields
(rip-current risk, surf, wind, UV index, water temperature, tides), and
appends one tab-delimited row with the raw text for reference. Unchanged
product text is not logged twice.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSurf(cmd.Context())
		},
	}
}

func runSurf(ctx context.Context) error {
	logger := logging.L

	httpClient, err := fetch.NewClient(fetch.Config{
		UserAgent: viper.GetString("http.user_agent"),
		Timeout:   viper.GetDuration("http.timeout"),
	}, logger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	forecastLogger := surf.NewLogger(
		httpClient,
		viper.GetString("surf.product_url"),
		viper.GetString("output.surf_tsv"),
		clockwork.NewRealClock(),
		logger,
	)
	return forecastLogger.Run(ctx)
}
