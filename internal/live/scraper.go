// Package live scrapes the current flag status from the official pages.
package live

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/beachwatch/pcbflags/internal/fetch"
	"github.com/beachwatch/pcbflags/internal/flags"
)

// flagPattern matches any known flag phrasing, longest alternative first so
// "double red flag" is never reported as just "red".
var flagPattern = regexp.MustCompile(
	`(?i)\b(double\s+red\s+flag|single\s+red\s+flag|red\s+flag|double\s+red|single\s+red|` +
		`yellow\s+flag|green\s+flag|purple\s+flag|yellow|green|purple|red)\b`)

// The alerts pages lead with this heading; a match close to it is more
// trustworthy than one anywhere in the page.
const (
	leadIn       = "current beach conditions"
	leadInWindow = 240
)

// Reading is the current flag as reported by one source page.
type Reading struct {
	FlagText       string
	NormalizedFlag string
	SourceURL      string
}

// Scraper reads the live pages in preference order.
type Scraper struct {
	client  *fetch.Client
	rules   flags.Rules
	sources []string
	logger  *zap.Logger
}

// NewScraper builds a live scraper over the given source pages, tried in
// order.
func NewScraper(client *fetch.Client, rules flags.Rules, sources []string, logger *zap.Logger) *Scraper {
	return &Scraper{client: client, rules: rules, sources: sources, logger: logger}
}

// Current returns the first flag reading found across the configured
// sources. A failure on one source is a warning and the next is tried; an
// error comes back only when no source yields a flag.
func (s *Scraper) Current(ctx context.Context) (Reading, error) {
	for _, src := range s.sources {
		body, status, err := s.client.Get(ctx, src)
		if err != nil {
			s.logger.Warn("Source fetch failed", zap.String("url", src), zap.Error(err))
			continue
		}
		if status != http.StatusOK {
			s.logger.Warn("Source returned non-200", zap.String("url", src), zap.Int("status", status))
			continue
		}
		text, err := flags.PageText(body)
		if err != nil {
			s.logger.Warn("Source parse failed", zap.String("url", src), zap.Error(err))
			continue
		}
		raw, ok := ExtractFlag(text)
		if !ok {
			continue
		}
		return Reading{
			FlagText:       raw,
			NormalizedFlag: s.rules.Normalize(raw),
			SourceURL:      src,
		}, nil
	}
	return Reading{}, errors.New("could not determine flag status from known sources")
}

// ExtractFlag prefers a match within a short window after the "current
// beach conditions" lead-in before scanning the whole text. Returns the raw
// matched phrase as it appears on the page.
func ExtractFlag(text string) (string, bool) {
	lower := strings.ToLower(text)
	if idx := strings.Index(lower, leadIn); idx >= 0 {
		end := idx + leadInWindow
		if end > len(text) {
			end = len(text)
		}
		if m := flagPattern.FindString(text[idx:end]); m != "" {
			return strings.TrimSpace(m), true
		}
	}
	if m := flagPattern.FindString(text); m != "" {
		return strings.TrimSpace(m), true
	}
	return "", false
}
