// Package pipeline wires the page fetch, lot extraction and ranking steps.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aluiziolira/go-scrape-lots/config"
	"github.com/aluiziolira/go-scrape-lots/models"
	"github.com/aluiziolira/go-scrape-lots/parser"
	"github.com/aluiziolira/go-scrape-lots/scraper"
)

var (
	// ErrEmptyPage is returned when the download produced no content.
	ErrEmptyPage = errors.New("pipeline: empty page")
)

// PageFetcher downloads one page as UTF-8 text.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// OutputWriter persists the downloaded page.
type OutputWriter interface {
	Write(page string) error
	Path() string
}

// FetchError reports a failed fetch-and-save. The run cannot continue after it.
type FetchError struct {
	URL  string
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Pipeline downloads the listing page and turns it into lots.
type Pipeline struct {
	url     string
	fetcher PageFetcher
	writer  OutputWriter
	extract parser.ExtractOptions
	metrics *scraper.Metrics
}

// NewPipeline builds a pipeline for cfg. metrics may be nil.
func NewPipeline(cfg *config.Config, fetcher PageFetcher, writer OutputWriter, metrics *scraper.Metrics) (*Pipeline, error) {
	prices, err := parser.NewPriceCache(cfg.PriceCacheSize)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		url:     cfg.URL,
		fetcher: fetcher,
		writer:  writer,
		extract: parser.ExtractOptions{
			TableID: cfg.TableID,
			Origin:  cfg.Origin,
			Prices:  prices,
		},
		metrics: metrics,
	}, nil
}

// OutputPath is where FetchAndSave stores the page.
func (p *Pipeline) OutputPath() string {
	return p.writer.Path()
}

// FetchAndSave downloads the configured URL, writes the text to the output
// file and returns it. Every failure is a *FetchError.
func (p *Pipeline) FetchAndSave(ctx context.Context) (string, error) {
	page, err := p.fetcher.Fetch(ctx, p.url)
	if err != nil {
		return "", p.fetchError(err)
	}
	if page == "" {
		return "", p.fetchError(ErrEmptyPage)
	}

	if err := p.writer.Write(page); err != nil {
		return "", p.fetchError(err)
	}

	slog.Debug("page saved",
		slog.String("url", p.url),
		slog.String("path", p.writer.Path()),
		slog.Int("bytes", len(page)),
	)
	return page, nil
}

// Extract parses page and pulls the lots out of the listing table.
func (p *Pipeline) Extract(page string) models.Extraction {
	doc, err := parser.ParseString(page)
	if err != nil {
		slog.Warn("parse page", slog.Any("error", err))
	}

	result := parser.Extract(doc, p.extract)
	p.metrics.AddLots(len(result.Lots))
	for reason, n := range result.Skipped {
		p.metrics.AddSkipped(reason, n)
	}
	return result
}

func (p *Pipeline) fetchError(err error) error {
	return &FetchError{
		URL:  p.url,
		Path: p.writer.Path(),
		Err:  fmt.Errorf("fetch and save %s: %w", p.url, err),
	}
}
