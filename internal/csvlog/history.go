// Package csvlog persists flag observations to the CSV and TSV artifacts.
package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/backfill"
)

// historyHeader is the fixed 7-column schema of the backfill artifact.
var historyHeader = []string{
	"date_local",
	"flag_text",
	"normalized_flag",
	"source_url",
	"wayback_ts",
	"wayback_url",
	"fetched_at_utc",
}

// HistoryWriter appends observations to the historical CSV, one
// open-write-close cycle per row. Dates already present in the artifact are
// suppressed so overlapping runs cannot duplicate rows.
type HistoryWriter struct {
	path   string
	seen   map[string]bool
	logger *zap.Logger
}

// NewHistoryWriter ensures the artifact exists with its header and indexes
// the date_local values already on disk.
func NewHistoryWriter(path string, logger *zap.Logger) (*HistoryWriter, error) {
	if err := ensureHeader(path, historyHeader, ','); err != nil {
		return nil, err
	}
	seen, err := existingDates(path)
	if err != nil {
		return nil, err
	}
	return &HistoryWriter{path: path, seen: seen, logger: logger}, nil
}

// Append writes one observation row. Returns false when the local date is
// already recorded.
func (w *HistoryWriter) Append(obs backfill.Observation) (bool, error) {
	if w.seen[obs.DateLocal] {
		return false, nil
	}
	row := []string{
		obs.DateLocal,
		obs.FlagText,
		obs.NormalizedFlag,
		obs.SourceURL,
		obs.WaybackTS,
		obs.WaybackURL,
		obs.FetchedAtUTC,
	}
	if err := appendRow(w.path, row, ','); err != nil {
		return false, err
	}
	w.seen[obs.DateLocal] = true
	return true, nil
}

// ensureHeader creates the artifact with its header when it does not exist.
func ensureHeader(path string, header []string, comma rune) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat artifact %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create artifact dir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", path, err)
	}
	wr := csv.NewWriter(f)
	wr.Comma = comma
	if err := wr.Write(header); err != nil {
		f.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	wr.Flush()
	if err := wr.Error(); err != nil {
		f.Close() //nolint:errcheck,gosec // flush error takes precedence
		return fmt.Errorf("flush header to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close artifact %s: %w", path, err)
	}
	return nil
}

// appendRow opens the artifact, appends one row, and closes it again. The
// file handle is never held across rows.
func appendRow(path string, row []string, comma rune) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", path, err)
	}
	wr := csv.NewWriter(f)
	wr.Comma = comma
	if err := wr.Write(row); err != nil {
		f.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("append row to %s: %w", path, err)
	}
	wr.Flush()
	if err := wr.Error(); err != nil {
		f.Close() //nolint:errcheck,gosec // flush error takes precedence
		return fmt.Errorf("flush row to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close artifact %s: %w", path, err)
	}
	return nil
}

func existingDates(path string) (map[string]bool, error) {
	rows, err := readAll(path, ',')
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		seen[row[0]] = true
	}
	return seen, nil
}

// readAll returns every row of an artifact, or nil when the file does not
// exist.
func readAll(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	return rows, nil
}
