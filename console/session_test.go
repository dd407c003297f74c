package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aluiziolira/go-scrape-lots/models"
	"github.com/aluiziolira/go-scrape-lots/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	page       string
	fetchErr   error
	fetchCalls int
	extracted  []string
}

func (f *fakeSource) FetchAndSave(context.Context) (string, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return f.page, nil
}

func (f *fakeSource) Extract(page string) models.Extraction {
	f.extracted = append(f.extracted, page)
	doc, err := parser.ParseString(page)
	if err != nil {
		return models.Extraction{}
	}
	return parser.Extract(doc, parser.ExtractOptions{})
}

func (f *fakeSource) OutputPath() string {
	return "torgi_page.html"
}

// readTracker records whether the session consumed any input.
type readTracker struct {
	r    io.Reader
	read bool
}

func (rt *readTracker) Read(p []byte) (int, error) {
	rt.read = true
	return rt.r.Read(p)
}

func listing(rows ...[2]string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table id="auction-table">`)
	b.WriteString(`<tr><th>#</th><th>Lot</th></tr>`)
	for i, r := range rows {
		b.WriteString(`<tr><td>` + string(rune('1'+i)) + `</td><td><a href="/lot/` + r[0] + `">` + r[0] + `</a></td>`)
		b.WriteString(`<td></td><td></td><td></td><td>` + r[1] + `</td><td></td></tr>`)
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}

func runSession(t *testing.T, source Source, input string) (Outcome, string) {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(source, strings.NewReader(input), &out)
	outcome, err := s.Run(context.Background())
	require.NoError(t, err)
	return outcome, out.String()
}

func TestSessionListsLotsInRange(t *testing.T) {
	source := &fakeSource{page: listing(
		[2]string{"cheap", "10 000 руб."},
		[2]string{"mid", "75 000,50"},
		[2]string{"expensive", "1 500 000"},
		[2]string{"edge", "50000"},
	)}

	outcome, out := runSession(t, source, "50000\n8000000\n")

	assert.Equal(t, OutcomeListed, outcome)
	assert.Contains(t, out, "Downloading page...\n")
	assert.Contains(t, out, "Page saved to torgi_page.html\n")
	assert.Contains(t, out, "Lots found: 4\n")
	assert.Contains(t, out, "Lots from 50,000.00 to 8,000,000.00 RUB:\n")
	assert.Contains(t, out, strings.Repeat("=", 80)+"\n")

	expected := "1. mid\n" +
		"   Price: 7,500,050.00 RUB\n" +
		"   Link: https://torgi.org/lot/mid\n" +
		strings.Repeat("-", 80) + "\n" +
		"2. expensive\n" +
		"   Price: 1,500,000.00 RUB\n" +
		"   Link: https://torgi.org/lot/expensive\n" +
		strings.Repeat("-", 80) + "\n" +
		"3. edge\n" +
		"   Price: 50,000.00 RUB\n" +
		"   Link: https://torgi.org/lot/edge\n" +
		strings.Repeat("-", 80) + "\n"
	assert.Contains(t, out, expected)
	assert.NotContains(t, out, "cheap")
	assert.NotContains(t, out, "No lots in range")
}

func TestSessionFetchFailureStopsRun(t *testing.T) {
	source := &fakeSource{fetchErr: errors.New("fetch and save: connection refused")}
	input := &readTracker{r: strings.NewReader("1\n2\n")}

	var out bytes.Buffer
	outcome, err := NewSession(source, input, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeFetchFailed, outcome)
	assert.Contains(t, out.String(), "Download failed: fetch and save: connection refused\n")
	assert.Empty(t, source.extracted, "nothing should be parsed")
	assert.False(t, input.read, "no prompt should be shown")
	assert.NotContains(t, out.String(), "Minimum price")
}

func TestSessionNoLotsStopsBeforePrompt(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{name: "table without qualifying rows", page: `<table id="auction-table"><tr><td>only</td></tr></table>`},
		{name: "missing table", page: `<html><body>maintenance</body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{page: tt.page}
			input := &readTracker{r: strings.NewReader("1\n2\n")}

			var out bytes.Buffer
			outcome, err := NewSession(source, input, &out).Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, OutcomeNoLots, outcome)
			assert.Contains(t, out.String(), "No lots found\n")
			assert.False(t, input.read)
		})
	}
}

func TestSessionInvertedRangeIsEmpty(t *testing.T) {
	source := &fakeSource{page: listing(
		[2]string{"a", "60000"},
		[2]string{"b", "75000"},
		[2]string{"c", "100000"},
	)}

	outcome, out := runSession(t, source, "100000\n50000\n")

	assert.Equal(t, OutcomeNoMatches, outcome)
	assert.Contains(t, out, "No lots in range\n")
	assert.NotContains(t, out, "1. ")
}

func TestSessionInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "letters for minimum", input: "cheap\n100\n"},
		{name: "letters for maximum", input: "100\nlots\n"},
		{name: "blank minimum", input: "\n100\n"},
		{name: "comma decimal", input: "1,5\n100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{page: listing([2]string{"a", "100"})}
			outcome, out := runSession(t, source, tt.input)

			assert.Equal(t, OutcomeInvalidInput, outcome)
			assert.Contains(t, out, "Error: prices must be numbers\n")
			assert.NotContains(t, out, "Lots from")
		})
	}
}

func TestSessionEndOfInputCancels(t *testing.T) {
	source := &fakeSource{page: listing([2]string{"a", "100"})}

	outcome, out := runSession(t, source, "10\n")

	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Contains(t, out, "Interrupted\n")
}

func TestSessionLastLineWithoutNewline(t *testing.T) {
	source := &fakeSource{page: listing([2]string{"a", "100"})}

	outcome, out := runSession(t, source, " 0 \n 1e3")

	assert.Equal(t, OutcomeListed, outcome)
	assert.Contains(t, out, "1. a\n")
}

func TestSessionInterruptDuringPrompt(t *testing.T) {
	source := &fakeSource{page: listing([2]string{"a", "100"})}
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	s := NewSession(source, pr, &out)
	s.interrupts = func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		time.AfterFunc(20*time.Millisecond, cancel)
		return ctx, cancel
	}

	outcome, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Contains(t, out.String(), "Minimum price: ")
	assert.Contains(t, out.String(), "\nInterrupted\n")
	assert.NotContains(t, out.String(), "Maximum price: ")
}

func TestSessionReportsConsoleWriteFailure(t *testing.T) {
	source := &fakeSource{fetchErr: errors.New("offline")}
	s := NewSession(source, strings.NewReader(""), failWriter{})

	outcome, err := s.Run(context.Background())
	assert.Equal(t, OutcomeFetchFailed, outcome)
	assert.ErrorContains(t, err, "write console")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
