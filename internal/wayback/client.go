package wayback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/fetch"
)

// Config holds the archive endpoints.
type Config struct {
	CDXEndpoint      string
	SnapshotEndpoint string
}

// Client talks to the archive through the shared fetcher.
type Client struct {
	cfg    Config
	http   *fetch.Client
	logger *zap.Logger
}

// NewClient builds an archive client.
func NewClient(cfg Config, httpClient *fetch.Client, logger *zap.Logger) (*Client, error) {
	if cfg.CDXEndpoint == "" {
		return nil, errors.New("wayback: cdx endpoint must be set")
	}
	if cfg.SnapshotEndpoint == "" {
		return nil, errors.New("wayback: snapshot endpoint must be set")
	}
	return &Client{cfg: cfg, http: httpClient, logger: logger}, nil
}

// DailySnapshots queries the CDX index for successful captures of pageURL in
// the inclusive year range, collapsed server-side to at most one capture per
// calendar day (earliest preferred). An empty index is not an error; a
// failed query is, and callers treat it as fatal.
func (c *Client) DailySnapshots(ctx context.Context, pageURL string, fromYear, toYear int) ([]Snapshot, error) {
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("output", "json")
	q.Set("from", strconv.Itoa(fromYear))
	q.Set("to", strconv.Itoa(toYear))
	q.Set("filter", "statuscode:200")
	q.Set("collapse", "timestamp:8")

	body, status, err := c.http.Get(ctx, c.cfg.CDXEndpoint+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("cdx query for %s: %w", pageURL, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("cdx query for %s: unexpected status %d", pageURL, status)
	}

	snaps, err := parseCDX(pageURL, body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("CDX index queried",
		zap.String("url", pageURL),
		zap.Int("from_year", fromYear),
		zap.Int("to_year", toYear),
		zap.Int("captures", len(snaps)),
	)
	return snaps, nil
}

// FetchSnapshot retrieves the archived body for one capture via the id_
// endpoint.
func (c *Client) FetchSnapshot(ctx context.Context, snap Snapshot) ([]byte, error) {
	target := SnapshotURL(c.cfg.SnapshotEndpoint, snap.Timestamp, snap.URL)
	body, status, err := c.http.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot %s: %w", target, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetch snapshot %s: unexpected status %d", target, status)
	}
	return body, nil
}

// parseCDX decodes the row-oriented JSON the CDX endpoint returns. The first
// row names the columns; the rest are positional string values. Missing or
// malformed fields fail here rather than flowing downstream as empty
// strings.
func parseCDX(pageURL string, body []byte) ([]Snapshot, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode cdx response for %s: %w", pageURL, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	tsIdx := -1
	for i, col := range rows[0] {
		if col == "timestamp" {
			tsIdx = i
			break
		}
	}
	if tsIdx < 0 {
		return nil, fmt.Errorf("cdx response for %s has no timestamp column", pageURL)
	}

	snaps := make([]Snapshot, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if tsIdx >= len(row) {
			return nil, fmt.Errorf("cdx row for %s is missing the timestamp field", pageURL)
		}
		ts := row[tsIdx]
		if len(ts) != TimestampLen {
			return nil, fmt.Errorf("cdx row for %s has malformed timestamp %q", pageURL, ts)
		}
		snaps = append(snaps, Snapshot{URL: pageURL, Timestamp: ts})
	}
	return snaps, nil
}
