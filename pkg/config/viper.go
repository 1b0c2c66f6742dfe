// Package config initializes the application's configuration. It uses the
// Viper library to read settings from a config file and environment
// variables, providing a unified configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/logging"
)

// InitConfig initializes the application's configuration using Viper. It
// sets defaults, defines configuration search paths, and enables reading
// from environment variables. Called once at startup via cobra.OnInitialize.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/pcbflags/")
		viper.AddConfigPath("$HOME/.pcbflags")
	}

	// --- Defaults ---
	viper.SetDefault("sources.alerts_url", "https://www.visitpanamacitybeach.com/beach-alerts-iframe/")
	viper.SetDefault("sources.safety_url", "https://www.visitpanamacitybeach.com/safety/beach-safety/")

	viper.SetDefault("wayback.cdx_endpoint", "https://web.archive.org/cdx/search/cdx")
	viper.SetDefault("wayback.snapshot_endpoint", "https://web.archive.org/web")

	viper.SetDefault("http.user_agent", "pcb-flag-logger/1.0 (+https://github.com/beachwatch/pcbflags)")
	viper.SetDefault("http.timeout", "30s")

	viper.SetDefault("location.timezone", "America/New_York")

	viper.SetDefault("output.history_csv", "pcb_flags_historical.csv")
	viper.SetDefault("output.daily_csv", "pcb_flags.csv")
	viper.SetDefault("output.surf_tsv", "data/noaa_pcb_srf_log.tsv")

	viper.SetDefault("surf.product_url", "https://tgftp.nws.noaa.gov/data/forecasts/marine/surf_zone/fl/flz112.txt")

	viper.SetDefault("logging.development", true)

	// --- Environment variables ---
	viper.SetEnvPrefix("PCB") // e.g. PCB_HTTP_TIMEOUT=45s
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// --- Config file ---
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logging.L.Debug("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
