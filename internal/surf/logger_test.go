package surf

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/fetch"
)

func testLogger(t *testing.T, productURL, path string) *Logger {
	t.Helper()
	client, err := fetch.NewClient(fetch.Config{UserAgent: "test-agent", Timeout: 5 * time.Second}, zap.NewNop())
	if err != nil {
		t.Fatalf("fetch.NewClient: %v", err)
	}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewLogger(client, productURL, path, clock, zap.NewNop())
}

func TestLoggerAppendsAndDeduplicates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleProduct))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "surf.tsv")
	l := testLogger(t, srv.URL, path)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open tsv: %v", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = '\t'
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read tsv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one row", len(rows))
	}

	row := rows[1]
	if len(row) != len(header) {
		t.Fatalf("row has %d columns, want %d", len(row), len(header))
	}
	if row[0] != "2025-03-01T12:00:00Z" {
		t.Fatalf("fetched_utc = %q", row[0])
	}
	if row[2] != "MODERATE" {
		t.Fatalf("rip_current_risk = %q", row[2])
	}
	if row[8] != srv.URL {
		t.Fatalf("source_url = %q", row[8])
	}
}

func TestLoggerErrorsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := testLogger(t, srv.URL, filepath.Join(t.TempDir(), "surf.tsv"))
	if err := l.Run(context.Background()); err == nil {
		t.Fatal("expected error for 404 product")
	}
}
