// Package backfill reconstructs the historical flag record from archive
// snapshots, one row per calendar day.
package backfill

import (
	"sort"

	"github.com/beachwatch/pcbflags/internal/wayback"
)

// DayRecord maps source URL to the single capture timestamp recorded for one
// calendar day.
type DayRecord map[string]string

// AggregateByDay buckets snapshots by their 8-digit UTC day key. At most one
// timestamp is kept per source per day; the first wins, matching the index's
// earliest-preferred collapse order. Pure grouping, no validation.
func AggregateByDay(groups ...[]wayback.Snapshot) map[string]DayRecord {
	byDay := make(map[string]DayRecord)
	for _, snaps := range groups {
		for _, s := range snaps {
			day := s.DayKey()
			rec, ok := byDay[day]
			if !ok {
				rec = make(DayRecord)
				byDay[day] = rec
			}
			if _, dup := rec[s.URL]; !dup {
				rec[s.URL] = s.Timestamp
			}
		}
	}
	return byDay
}

// SortedDays returns the day keys in ascending order.
func SortedDays(byDay map[string]DayRecord) []string {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
