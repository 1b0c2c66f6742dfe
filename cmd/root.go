package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/logging"
	"github.com/beachwatch/pcbflags/pkg/config"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pcbflags",
		Short: "Beach-safety flag logging tools for Panama City Beach, FL.",
		Long: `pcbflags records the daily beach-safety flag status for Panama City
Beach. The live site only exposes the current flag, so the backfill command
reconstructs history from the Internet Archive, the scrape command logs the
flag flying right now, and the surf command logs the NWS surf-zone forecast.`,
	}

	cobra.OnInitialize(initConfig)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pcbflags/config.yaml)")

	cmd.AddCommand(newBackfillCmd())
	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newSurfCmd())

	return cmd
}

// initConfig loads Viper configuration, then rebuilds the logger in case the
// config switched it out of development mode.
func initConfig() {
	config.InitConfig(cfgFile)
	if !viper.GetBool("logging.development") {
		logging.InitLogger(false)
	}
}

// Execute is the main entry point.
func Execute() {
	// Initialize the logger once at the very start; initConfig may rebuild
	// it after the configuration is known.
	logging.InitLogger(true)

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}
