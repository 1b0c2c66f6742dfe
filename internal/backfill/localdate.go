package backfill

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const captureLayout = "20060102150405"

// Resolver converts UTC capture timestamps into the location's local
// calendar date.
type Resolver struct {
	loc      *time.Location
	degraded bool
}

// NewResolver loads the named civil time zone. When zone data is
// unavailable the resolver keeps working with UTC dates and says so once in
// the log; the degrade is observable, never silent.
func NewResolver(zone string, logger *zap.Logger) *Resolver {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		logger.Warn("Time zone data unavailable; resolving local dates as UTC",
			zap.String("zone", zone),
			zap.Error(err),
		)
		return &Resolver{loc: time.UTC, degraded: true}
	}
	return &Resolver{loc: loc}
}

// Degraded reports whether the resolver fell back to UTC.
func (r *Resolver) Degraded() bool {
	return r.degraded
}

// LocalTime parses a 14-digit UTC capture timestamp and returns the
// corresponding instant in the resolver's zone.
func (r *Resolver) LocalTime(ts string) (time.Time, error) {
	t, err := time.ParseInLocation(captureLayout, ts, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse capture timestamp %q: %w", ts, err)
	}
	return t.In(r.loc), nil
}

// CalendarDate formats an instant as the local calendar date, YYYY-MM-DD.
func (r *Resolver) CalendarDate(t time.Time) string {
	return t.In(r.loc).Format("2006-01-02")
}
