// Package fetch provides the shared HTTP fetcher built on Colly.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Config holds the fetcher knobs.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Client wraps a configured Colly collector. Each request runs on a clone of
// the base collector so per-request callbacks never leak between calls.
type Client struct {
	base   *colly.Collector
	logger *zap.Logger
}

// NewClient constructs a configured Colly-based fetcher.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, errors.New("fetch: user agent must be set")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("fetch: timeout must be > 0")
	}

	base := colly.NewCollector(
		colly.Async(true),
		colly.UserAgent(cfg.UserAgent),
	)
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.Timeout)

	return &Client{base: base, logger: logger}, nil
}

// Get retrieves a URL and returns the body and status code. Transport
// failures and HTTP error statuses both surface as errors, with the status
// code populated when a response was received.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, int, error) {
	collector := c.base.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{
			body:   append([]byte{}, r.Body...),
			status: r.StatusCode,
		})
	})

	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		send(fetchResult{status: status, err: err})
	})

	if err := collector.Visit(rawURL); err != nil {
		return nil, 0, fmt.Errorf("visit %s: %w", rawURL, err)
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		return res.body, res.status, res.err
	default:
		return nil, 0, fmt.Errorf("fetch %s produced no result", rawURL)
	}
}

type fetchResult struct {
	body   []byte
	status int
	err    error
}
