package surf

import (
	"context"
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/csvlog"
	"github.com/beachwatch/pcbflags/internal/fetch"
)

// header of the tab-delimited log, one row per distinct forecast text.
var header = []string{
	"fetched_utc",
	"issued_line",
	"rip_current_risk",
	"surf",
	"wind",
	"uv_index",
	"water_temp",
	"tides",
	"source_url",
	"raw_sha1",
	"raw_text",
}

// Logger fetches the forecast product and appends one row per run, skipping
// products whose exact text has been logged before.
type Logger struct {
	client *fetch.Client
	url    string
	path   string
	clock  clockwork.Clock
	logger *zap.Logger
}

// NewLogger builds a forecast logger writing to path.
func NewLogger(client *fetch.Client, productURL, path string, clock clockwork.Clock, logger *zap.Logger) *Logger {
	return &Logger{client: client, url: productURL, path: path, clock: clock, logger: logger}
}

// Run performs one fetch-parse-append cycle.
func (l *Logger) Run(ctx context.Context) error {
	body, status, err := l.client.Get(ctx, l.url)
	if err != nil {
		return fmt.Errorf("fetch forecast %s: %w", l.url, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("fetch forecast %s: unexpected status %d", l.url, status)
	}

	raw := strings.TrimSpace(strings.ReplaceAll(string(body), "\r\n", "\n"))
	sum := sha1.Sum([]byte(raw)) //nolint:gosec // content fingerprint
	rawHash := hex.EncodeToString(sum[:])

	seen, err := csvlog.TSVColumn(l.path, "raw_sha1")
	if err != nil {
		return err
	}
	if seen[rawHash] {
		l.logger.Info("Forecast text unchanged; already logged", zap.String("raw_sha1", rawHash))
		return nil
	}

	fields := ParseFields(raw)
	row := []string{
		l.clock.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		fields.IssuedLine,
		fields.RipCurrentRisk,
		fields.Surf,
		fields.Wind,
		fields.UVIndex,
		fields.WaterTemp,
		fields.Tides,
		l.url,
		rawHash,
		raw,
	}
	if err := csvlog.AppendTSV(l.path, header, row); err != nil {
		return err
	}

	l.logger.Info("Forecast logged",
		zap.String("risk", fields.RipCurrentRisk),
		zap.String("surf", fields.Surf),
	)
	return nil
}
