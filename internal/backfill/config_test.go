package backfill

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func validConfig() Config {
	return Config{
		PrimaryURL:       primaryURL,
		SecondaryURL:     secondaryURL,
		CDXEndpoint:      "https://web.archive.org/cdx/search/cdx",
		SnapshotEndpoint: "https://web.archive.org/web",
		UserAgent:        "test-agent",
		Timeout:          30 * time.Second,
		Timezone:         "America/New_York",
		HistoryCSV:       "out.csv",
		FromYear:         2022,
		ToYear:           2023,
	}
}

func TestLoadConfig(t *testing.T) {
	v := viper.New()
	v.Set("sources.alerts_url", primaryURL)
	v.Set("sources.safety_url", secondaryURL)
	v.Set("wayback.cdx_endpoint", "https://cdx.test")
	v.Set("wayback.snapshot_endpoint", "https://web.test")
	v.Set("http.user_agent", "agent")
	v.Set("http.timeout", "45s")
	v.Set("location.timezone", "America/Chicago")
	v.Set("output.history_csv", "history.csv")

	cfg := LoadConfig(v)

	if cfg.PrimaryURL != primaryURL || cfg.SecondaryURL != secondaryURL {
		t.Fatalf("source URLs not loaded: %+v", cfg)
	}
	if cfg.Timeout != 45*time.Second {
		t.Fatalf("expected timeout 45s, got %v", cfg.Timeout)
	}
	if cfg.Timezone != "America/Chicago" || cfg.HistoryCSV != "history.csv" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "missing primary", mutate: func(c *Config) { c.PrimaryURL = "" }, want: "alerts_url"},
		{name: "missing secondary", mutate: func(c *Config) { c.SecondaryURL = "" }, want: "safety_url"},
		{name: "missing cdx", mutate: func(c *Config) { c.CDXEndpoint = "" }, want: "cdx_endpoint"},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, want: "timeout"},
		{name: "missing years", mutate: func(c *Config) { c.FromYear = 0 }, want: "from-year"},
		{name: "inverted years", mutate: func(c *Config) { c.FromYear = 2024; c.ToYear = 2022 }, want: "after"},
		{name: "month out of range", mutate: func(c *Config) { c.Months = []int{13} }, want: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}

	cfg := validConfig()
	cfg.Months = []int{5, 6, 7, 8}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}
