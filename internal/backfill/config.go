package backfill

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a backfill run. The endpoint
// and source values come from Viper; the year range and month filter are
// filled in from CLI flags by the command before validation.
type Config struct {
	PrimaryURL       string
	SecondaryURL     string
	CDXEndpoint      string
	SnapshotEndpoint string
	UserAgent        string
	Timeout          time.Duration
	Timezone         string
	HistoryCSV       string
	FromYear         int
	ToYear           int
	Months           []int
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) Config {
	return Config{
		PrimaryURL:       v.GetString("sources.alerts_url"),
		SecondaryURL:     v.GetString("sources.safety_url"),
		CDXEndpoint:      v.GetString("wayback.cdx_endpoint"),
		SnapshotEndpoint: v.GetString("wayback.snapshot_endpoint"),
		UserAgent:        v.GetString("http.user_agent"),
		Timeout:          v.GetDuration("http.timeout"),
		Timezone:         v.GetString("location.timezone"),
		HistoryCSV:       v.GetString("output.history_csv"),
	}
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.PrimaryURL == "" {
		return fmt.Errorf("sources.alerts_url must be set")
	}
	if c.SecondaryURL == "" {
		return fmt.Errorf("sources.safety_url must be set")
	}
	if c.CDXEndpoint == "" {
		return fmt.Errorf("wayback.cdx_endpoint must be set")
	}
	if c.SnapshotEndpoint == "" {
		return fmt.Errorf("wayback.snapshot_endpoint must be set")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0")
	}
	if c.HistoryCSV == "" {
		return fmt.Errorf("output.history_csv must be set")
	}
	if c.FromYear <= 0 || c.ToYear <= 0 {
		return fmt.Errorf("from-year and to-year must be set")
	}
	if c.FromYear > c.ToYear {
		return fmt.Errorf("from-year %d is after to-year %d", c.FromYear, c.ToYear)
	}
	for _, m := range c.Months {
		if m < 1 || m > 12 {
			return fmt.Errorf("month %d out of range 1-12", m)
		}
	}
	return nil
}
