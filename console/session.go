// Package console runs the interactive lot listing session.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/aluiziolira/go-scrape-lots/models"
	"github.com/aluiziolira/go-scrape-lots/pipeline"
)

// Outcome describes how a session ended.
type Outcome string

const (
	OutcomeFetchFailed  Outcome = "fetch_failed"
	OutcomeNoLots       Outcome = "no_lots"
	OutcomeInvalidInput Outcome = "invalid_input"
	OutcomeCancelled    Outcome = "cancelled"
	OutcomeNoMatches    Outcome = "no_matches"
	OutcomeListed       Outcome = "listed"
)

var (
	errCancelled = errors.New("console: input cancelled")
)

// Source provides the page and the lots extracted from it.
type Source interface {
	FetchAndSave(ctx context.Context) (string, error)
	Extract(page string) models.Extraction
	OutputPath() string
}

// Session drives one fetch, extract, prompt and render cycle.
type Session struct {
	source Source
	in     *bufio.Reader
	out    io.Writer

	// interrupts scopes interrupt handling to the prompts.
	interrupts func(context.Context) (context.Context, context.CancelFunc)
}

// NewSession reads answers from in and writes everything else to out.
func NewSession(source Source, in io.Reader, out io.Writer) *Session {
	return &Session{
		source: source,
		in:     bufio.NewReader(in),
		out:    out,
		interrupts: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

// Run executes the session. The error is non-nil only when the console
// itself cannot be written to.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	w := &errWriter{w: s.out}
	outcome := s.run(ctx, w)
	slog.Debug("session finished", slog.String("outcome", string(outcome)))
	if w.err != nil {
		return outcome, fmt.Errorf("write console: %w", w.err)
	}
	return outcome, nil
}

func (s *Session) run(ctx context.Context, w *errWriter) Outcome {
	w.printf("Downloading page...\n")
	page, err := s.source.FetchAndSave(ctx)
	if err != nil {
		w.printf("Download failed: %v\n", err)
		return OutcomeFetchFailed
	}
	w.printf("Page saved to %s\n", s.source.OutputPath())

	w.printf("Parsing lots...\n")
	result := s.source.Extract(page)
	if len(result.Lots) == 0 {
		w.printf("No lots found\n")
		return OutcomeNoLots
	}

	lots := pipeline.SortByPriceDesc(result.Lots)
	w.printf("\nLots found: %d\n\n", len(lots))

	minPrice, maxPrice, err := s.readRange(ctx, w)
	switch {
	case errors.Is(err, errCancelled):
		w.printf("\nInterrupted\n")
		return OutcomeCancelled
	case err != nil:
		w.printf("Error: prices must be numbers\n")
		slog.Debug("invalid price bound", slog.Any("error", err))
		return OutcomeInvalidInput
	}

	matched := pipeline.FilterByPrice(lots, minPrice, maxPrice)
	render(w, matched, minPrice, maxPrice)
	if len(matched) == 0 {
		return OutcomeNoMatches
	}
	return OutcomeListed
}

func (s *Session) readRange(ctx context.Context, w *errWriter) (float64, float64, error) {
	ctx, stop := s.interrupts(ctx)
	defer stop()

	minPrice, err := s.prompt(ctx, w, "Minimum price: ")
	if err != nil {
		return 0, 0, err
	}
	maxPrice, err := s.prompt(ctx, w, "Maximum price: ")
	if err != nil {
		return 0, 0, err
	}
	return minPrice, maxPrice, nil
}

func (s *Session) prompt(ctx context.Context, w *errWriter, label string) (float64, error) {
	w.printf("%s", label)
	line, err := s.readLine(ctx)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", strings.TrimSpace(line), err)
	}
	return value, nil
}

// readLine blocks until a line is read or ctx is done. End of input without
// any text counts as a cancellation.
func (s *Session) readLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", errCancelled
	}

	type result struct {
		line string
		err  error
	}
	lines := make(chan result, 1)
	go func() {
		line, err := s.in.ReadString('\n')
		lines <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", errCancelled
	case r := <-lines:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && strings.TrimSpace(r.line) != "" {
				return r.line, nil
			}
			if errors.Is(r.err, io.EOF) {
				return "", errCancelled
			}
			return "", fmt.Errorf("read input: %w", r.err)
		}
		return r.line, nil
	}
}

// errWriter remembers the first write error and drops later output.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
