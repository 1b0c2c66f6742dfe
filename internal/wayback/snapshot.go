// Package wayback queries the Internet Archive: the CDX capture index and
// the archived snapshot endpoint.
package wayback

import (
	"fmt"
	"strings"
)

// TimestampLen is the length of a CDX capture timestamp, YYYYMMDDhhmmss UTC.
const TimestampLen = 14

// dayKeyLen is the 8-digit year-month-day prefix used to bucket captures.
const dayKeyLen = 8

// Snapshot is one archived capture of a URL at a specific UTC instant.
type Snapshot struct {
	URL       string
	Timestamp string
}

// DayKey returns the 8-digit year-month-day bucket of the capture.
func (s Snapshot) DayKey() string {
	if len(s.Timestamp) < dayKeyLen {
		return s.Timestamp
	}
	return s.Timestamp[:dayKeyLen]
}

// SnapshotURL reconstructs the archive resource URL for a capture. The id_
// modifier asks the archive for the original body without replay chrome.
func SnapshotURL(endpoint, ts, original string) string {
	return fmt.Sprintf("%s/%sid_/%s", strings.TrimRight(endpoint, "/"), ts, original)
}
