package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
)

// dailyHeader is the live log schema, one row per local calendar day.
var dailyHeader = []string{
	"date_local",
	"flag_text",
	"normalized_flag",
	"source_url",
	"fetched_at_utc",
}

// DailyRow is today's flag reading.
type DailyRow struct {
	DateLocal      string
	FlagText       string
	NormalizedFlag string
	SourceURL      string
	FetchedAtUTC   string
}

// UpsertAction says whether the daily log gained a row or replaced one.
type UpsertAction string

// Upsert outcomes.
const (
	ActionAppend UpsertAction = "append"
	ActionUpdate UpsertAction = "update"
)

// UpsertDaily inserts or replaces the row keyed by date_local, rewriting the
// file in place. Repeated same-day runs are idempotent.
func UpsertDaily(path string, row DailyRow) (UpsertAction, error) {
	rows, err := readAll(path, ',')
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		rows = [][]string{dailyHeader}
	}

	record := []string{
		row.DateLocal,
		row.FlagText,
		row.NormalizedFlag,
		row.SourceURL,
		row.FetchedAtUTC,
	}

	action := ActionAppend
	replaced := false
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > 0 && rows[i][0] == row.DateLocal {
			rows[i] = record
			action = ActionUpdate
			replaced = true
			break
		}
	}
	if !replaced {
		rows = append(rows, record)
	}

	if err := writeAll(path, rows); err != nil {
		return "", err
	}
	return action, nil
}

func writeAll(path string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", path, err)
	}
	wr := csv.NewWriter(f)
	if err := wr.WriteAll(rows); err != nil {
		f.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close artifact %s: %w", path, err)
	}
	return nil
}
