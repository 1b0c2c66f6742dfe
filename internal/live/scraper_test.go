package live

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/fetch"
	"github.com/beachwatch/pcbflags/internal/flags"
)

func TestExtractFlag(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "match near lead-in wins",
			text: "warning: red tide advisory ... Current Beach Conditions: Double Red Flag",
			want: "Double Red Flag",
			ok:   true,
		},
		{
			name: "whole-text scan without lead-in",
			text: "today the beach is flying the Yellow Flag",
			want: "Yellow Flag",
			ok:   true,
		},
		{
			name: "raw casing preserved",
			text: "current beach conditions SINGLE RED FLAG",
			want: "SINGLE RED FLAG",
			ok:   true,
		},
		{
			name: "longest alternative first",
			text: "double red flag in effect",
			want: "double red flag",
			ok:   true,
		},
		{name: "no flag", text: "beautiful day at the beach", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractFlag(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ExtractFlag(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestScraperFallsBackToSecondSource(t *testing.T) {
	var alerts, safety *httptest.Server
	alerts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>no conditions listed</body></html>")
	}))
	defer alerts.Close()
	safety = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>Current Beach Conditions: Green Flag</body></html>")
	}))
	defer safety.Close()

	client, err := fetch.NewClient(fetch.Config{UserAgent: "pcbflags-test/1.0", Timeout: 5 * time.Second}, zap.NewNop())
	require.NoError(t, err)

	s := NewScraper(client, flags.DefaultRules(), []string{alerts.URL, safety.URL}, zap.NewNop())
	reading, err := s.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Green Flag", reading.FlagText)
	assert.Equal(t, flags.Green, reading.NormalizedFlag)
	assert.Equal(t, safety.URL, reading.SourceURL)
}

func TestScraperErrorsWhenNoSourceYieldsFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>nothing here</body></html>")
	}))
	defer srv.Close()

	client, err := fetch.NewClient(fetch.Config{UserAgent: "pcbflags-test/1.0", Timeout: 5 * time.Second}, zap.NewNop())
	require.NoError(t, err)

	s := NewScraper(client, flags.DefaultRules(), []string{srv.URL}, zap.NewNop())
	_, err = s.Current(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "could not determine"))
}
