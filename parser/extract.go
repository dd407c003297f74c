package parser

import (
	"log/slog"
	"strings"

	"github.com/aluiziolira/go-scrape-lots/models"
)

const (
	// DefaultTableID is the id of the listing table on torgi.org.
	DefaultTableID = "auction-table"
	// DefaultOrigin is prefixed to every relative lot link.
	DefaultOrigin = "https://torgi.org"

	minCells  = 7
	nameCell  = 1
	priceCell = 5
)

// Skip reasons reported in models.Extraction.Skipped.
const (
	SkipShortRow      = "short_row"
	SkipMissingAnchor = "missing_anchor"
)

// ExtractOptions configures lot extraction. Zero values fall back to the
// torgi.org defaults.
type ExtractOptions struct {
	TableID string
	Origin  string
	Prices  *PriceCache
}

func (o ExtractOptions) tableID() string {
	if o.TableID == "" {
		return DefaultTableID
	}
	return o.TableID
}

func (o ExtractOptions) origin() string {
	if o.Origin == "" {
		return DefaultOrigin
	}
	return o.Origin
}

// ExtractLots returns the lots of the listing table in row order.
func ExtractLots(doc Document, opts ExtractOptions) []models.Lot {
	return Extract(doc, opts).Lots
}

// Extract walks the listing table and reports the lots it found together with
// the rows it had to skip. A missing table is logged and yields no lots.
func Extract(doc Document, opts ExtractOptions) models.Extraction {
	result := models.Extraction{
		Lots:    []models.Lot{},
		Skipped: make(map[string]int),
	}
	if doc == nil {
		slog.Warn("auction table not found", slog.String("table_id", opts.tableID()))
		return result
	}

	table, ok := doc.Table(opts.tableID())
	if !ok {
		slog.Warn("auction table not found", slog.String("table_id", opts.tableID()))
		return result
	}
	result.TableFound = true

	origin := opts.origin()
	for _, row := range table.Rows() {
		result.Rows++

		cells := row.Cells()
		if len(cells) < minCells {
			result.Skipped[SkipShortRow]++
			continue
		}

		anchor, ok := cells[nameCell].Anchor()
		if !ok {
			result.Skipped[SkipMissingAnchor]++
			continue
		}

		result.Lots = append(result.Lots, models.Lot{
			Name:  strings.TrimSpace(anchor.Text),
			Price: opts.Prices.Normalize(strings.TrimSpace(cells[priceCell].Text())),
			Link:  origin + strings.TrimSpace(anchor.Href),
		})
	}

	slog.Debug("extracted lots",
		slog.Int("rows", result.Rows),
		slog.Int("lots", len(result.Lots)),
		slog.Any("skipped", result.Skipped),
	)
	return result
}
