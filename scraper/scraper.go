// Package scraper downloads the auction listing page.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aluiziolira/go-scrape-lots/config"
	"github.com/gocolly/colly/v2"
)

// Scraper wraps a colly collector that issues one GET per Fetch call.
type Scraper struct {
	cfg       *config.Config
	collector *colly.Collector
	Metrics   *Metrics
}

// NewScraper builds a scraper instance configured from cfg.
func NewScraper(cfg *config.Config) (*Scraper, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("url must include a host")
	}

	options := []colly.CollectorOption{colly.AllowURLRevisit()}
	if cfg.UserAgent != "" {
		options = append(options, colly.UserAgent(cfg.UserAgent))
	}
	collector := colly.NewCollector(options...)

	// Zero timeout and zero body size mean no limit.
	collector.SetRequestTimeout(cfg.Timeout)
	collector.MaxBodySize = 0
	collector.IgnoreRobotsTxt = true
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
	})

	return &Scraper{
		cfg:       cfg,
		collector: collector,
		Metrics:   NewMetrics(),
	}, nil
}

// WithTransport replaces the HTTP transport used by the collector.
func (s *Scraper) WithTransport(transport http.RoundTripper) {
	s.collector.WithTransport(transport)
}

// Fetch downloads pageURL once and returns its body as UTF-8 text.
// Failures are returned as *RequestError.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	var (
		body        []byte
		contentType string
		failure     *RequestError
	)

	c := s.collector.Clone()
	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		s.Metrics.IncRequest("started")
		slog.Debug("requesting page", slog.String("url", r.URL.String()))
	})
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		if r.Headers != nil {
			contentType = r.Headers.Get("Content-Type")
		}
		slog.Debug("page received",
			slog.Int("status", r.StatusCode),
			slog.Int("bytes", len(r.Body)),
			slog.String("content_type", contentType),
		)
	})
	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		failure = classifyError(err, status)
	})

	start := time.Now()
	err := c.Visit(pageURL)
	s.Metrics.ObserveDuration(time.Since(start))

	if failure == nil && err != nil {
		failure = classifyError(err, 0)
	}
	if failure == nil && ctx.Err() != nil {
		failure = classifyError(ctx.Err(), 0)
	}
	if failure != nil {
		return "", s.fail(pageURL, failure)
	}

	text, err := decodeUTF8(body, contentType)
	if err != nil {
		return "", s.fail(pageURL, &RequestError{Kind: KindDecode, Err: err})
	}

	s.Metrics.IncRequest("completed")
	s.Metrics.SetPageBytes(len(text))
	return text, nil
}

func (s *Scraper) fail(pageURL string, reqErr *RequestError) error {
	s.Metrics.IncRequest("failed")
	s.Metrics.IncError(reqErr.Kind)
	slog.Error("request error",
		slog.String("url", pageURL),
		slog.String("category", string(reqErr.Kind)),
		slog.Any("error", reqErr.Err),
	)
	return fmt.Errorf("fetch %s: %w", pageURL, reqErr)
}
