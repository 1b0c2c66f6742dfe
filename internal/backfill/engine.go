package backfill

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/flags"
	"github.com/beachwatch/pcbflags/internal/wayback"
)

// IndexClient queries the archive index for daily capture candidates.
type IndexClient interface {
	DailySnapshots(ctx context.Context, pageURL string, fromYear, toYear int) ([]wayback.Snapshot, error)
}

// SnapshotFetcher retrieves archived page bodies.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, snap wayback.Snapshot) ([]byte, error)
}

// ObservationWriter persists one finalized observation. The boolean is false
// when the row was suppressed as a duplicate of an already-recorded date.
type ObservationWriter interface {
	Append(obs Observation) (bool, error)
}

// Observation is one finalized row of the history artifact.
type Observation struct {
	DateLocal      string
	FlagText       string
	NormalizedFlag string
	SourceURL      string
	WaybackTS      string
	WaybackURL     string
	FetchedAtUTC   string
}

// Summary reports what a run accomplished.
type Summary struct {
	DaysSeen    int
	DaysWritten int
	DaysSkipped int
}

// Engine drives the per-day fetch, extract, fallback, normalize, resolve,
// write loop. Fully sequential: one day completes before the next begins.
type Engine struct {
	cfg      Config
	index    IndexClient
	fetcher  SnapshotFetcher
	rules    flags.Rules
	writer   ObservationWriter
	resolver *Resolver
	clock    clockwork.Clock
	logger   *zap.Logger
}

// NewEngine wires the pipeline stages together.
func NewEngine(
	cfg Config,
	index IndexClient,
	fetcher SnapshotFetcher,
	rules flags.Rules,
	writer ObservationWriter,
	resolver *Resolver,
	clock clockwork.Clock,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		cfg:      cfg,
		index:    index,
		fetcher:  fetcher,
		rules:    rules,
		writer:   writer,
		resolver: resolver,
		clock:    clock,
		logger:   logger,
	}
}

// Run executes the backfill. An index query failure is the one fatal path;
// every later failure is isolated to its day, logged, and skipped.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	log := e.logger.With(zap.String("run_id", uuid.NewString()))

	primary, err := e.index.DailySnapshots(ctx, e.cfg.PrimaryURL, e.cfg.FromYear, e.cfg.ToYear)
	if err != nil {
		return Summary{}, fmt.Errorf("query archive index: %w", err)
	}
	secondary, err := e.index.DailySnapshots(ctx, e.cfg.SecondaryURL, e.cfg.FromYear, e.cfg.ToYear)
	if err != nil {
		return Summary{}, fmt.Errorf("query archive index: %w", err)
	}

	byDay := AggregateByDay(primary, secondary)
	months := monthSet(e.cfg.Months)
	// One run timestamp shared by every row the run emits.
	fetchedAt := e.clock.Now().UTC().Truncate(time.Second).Format(time.RFC3339)

	var sum Summary
	for _, day := range SortedDays(byDay) {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if !dayInScope(day, months) {
			continue
		}
		sum.DaysSeen++

		obs, ok, err := e.processDay(ctx, byDay[day], months, fetchedAt)
		if err != nil {
			log.Warn("Skipping day after failure", zap.String("day", day), zap.Error(err))
			sum.DaysSkipped++
			continue
		}
		if !ok {
			sum.DaysSkipped++
			continue
		}

		written, err := e.writer.Append(obs)
		if err != nil {
			log.Warn("Failed to write observation", zap.String("day", day), zap.Error(err))
			sum.DaysSkipped++
			continue
		}
		if !written {
			log.Debug("Date already recorded; skipping duplicate",
				zap.String("date_local", obs.DateLocal))
			sum.DaysSkipped++
			continue
		}
		sum.DaysWritten++
	}

	log.Info("Backfill complete",
		zap.Int("days_seen", sum.DaysSeen),
		zap.Int("days_written", sum.DaysWritten),
		zap.Int("days_skipped", sum.DaysSkipped),
	)
	return sum, nil
}

// processDay runs the fetch/extract/fallback sequence for one day. A false
// result with nil error is the expected archive gap: no capture for a
// preferred source or no flag phrase in either source's text.
func (e *Engine) processDay(ctx context.Context, rec DayRecord, months map[time.Month]bool, fetchedAt string) (Observation, bool, error) {
	srcURL, ts, ok := e.preferredSource(rec)
	if !ok {
		return Observation{}, false, nil
	}

	body, err := e.fetcher.FetchSnapshot(ctx, wayback.Snapshot{URL: srcURL, Timestamp: ts})
	if err != nil {
		return Observation{}, false, err
	}
	phrase, found := flags.ExtractHTML(body)

	if !found {
		alt := e.otherSource(srcURL)
		if altTS, has := rec[alt]; has {
			altBody, err := e.fetcher.FetchSnapshot(ctx, wayback.Snapshot{URL: alt, Timestamp: altTS})
			if err != nil {
				return Observation{}, false, err
			}
			if p, ok := flags.ExtractHTML(altBody); ok {
				phrase = p
				found = true
				srcURL, ts = alt, altTS
			}
		}
	}
	if !found {
		return Observation{}, false, nil
	}

	local, err := e.resolver.LocalTime(ts)
	if err != nil {
		return Observation{}, false, err
	}
	if len(months) > 0 && !months[local.Month()] {
		return Observation{}, false, nil
	}

	return Observation{
		DateLocal:      local.Format("2006-01-02"),
		FlagText:       phrase,
		NormalizedFlag: e.rules.Normalize(phrase),
		SourceURL:      srcURL,
		WaybackTS:      ts,
		WaybackURL:     wayback.SnapshotURL(e.cfg.SnapshotEndpoint, ts, srcURL),
		FetchedAtUTC:   fetchedAt,
	}, true, nil
}

func (e *Engine) preferredSource(rec DayRecord) (string, string, bool) {
	if ts, ok := rec[e.cfg.PrimaryURL]; ok {
		return e.cfg.PrimaryURL, ts, true
	}
	if ts, ok := rec[e.cfg.SecondaryURL]; ok {
		return e.cfg.SecondaryURL, ts, true
	}
	return "", "", false
}

func (e *Engine) otherSource(src string) string {
	if src == e.cfg.PrimaryURL {
		return e.cfg.SecondaryURL
	}
	return e.cfg.PrimaryURL
}

// dayInScope prunes UTC days that cannot resolve into a requested month.
// A capture's local date is at most one day off its UTC date in either
// direction; the definitive check happens on the resolved date.
func dayInScope(day string, months map[time.Month]bool) bool {
	if len(months) == 0 {
		return true
	}
	d, err := time.Parse("20060102", day)
	if err != nil {
		return true
	}
	return months[d.Month()] ||
		months[d.AddDate(0, 0, -1).Month()] ||
		months[d.AddDate(0, 0, 1).Month()]
}

func monthSet(months []int) map[time.Month]bool {
	if len(months) == 0 {
		return nil
	}
	set := make(map[time.Month]bool, len(months))
	for _, m := range months {
		set[time.Month(m)] = true
	}
	return set
}
