package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document gives the extractor access to tables by element id.
type Document interface {
	Table(id string) (Table, bool)
}

// Table yields every row of a table in document order.
type Table interface {
	Rows() []Row
}

// Row yields the data cells of one table row.
type Row interface {
	Cells() []Cell
}

// Cell is a single data cell.
type Cell interface {
	Text() string
	// Anchor returns the first link nested in the cell.
	Anchor() (Anchor, bool)
}

// Anchor is a link element. Href is empty when the attribute is absent.
type Anchor struct {
	Text string
	Href string
}

// ParseHTML parses r into a goquery backed Document.
func ParseHTML(r io.Reader) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return htmlDocument{doc: doc}, nil
}

// ParseString is ParseHTML for in-memory markup.
func ParseString(markup string) (Document, error) {
	return ParseHTML(strings.NewReader(markup))
}

type htmlDocument struct {
	doc *goquery.Document
}

func (d htmlDocument) Table(id string) (Table, bool) {
	var found *goquery.Selection
	d.doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if value, ok := s.Attr("id"); ok && value == id {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return htmlTable{sel: found}, true
}

type htmlTable struct {
	sel *goquery.Selection
}

func (t htmlTable) Rows() []Row {
	trs := t.sel.Find("tr")
	rows := make([]Row, 0, trs.Length())
	trs.Each(func(_ int, s *goquery.Selection) {
		rows = append(rows, htmlRow{sel: s})
	})
	return rows
}

type htmlRow struct {
	sel *goquery.Selection
}

func (r htmlRow) Cells() []Cell {
	tds := r.sel.Find("td")
	cells := make([]Cell, 0, tds.Length())
	tds.Each(func(_ int, s *goquery.Selection) {
		cells = append(cells, htmlCell{sel: s})
	})
	return cells
}

type htmlCell struct {
	sel *goquery.Selection
}

func (c htmlCell) Text() string {
	return c.sel.Text()
}

func (c htmlCell) Anchor() (Anchor, bool) {
	a := c.sel.Find("a").First()
	if a.Length() == 0 {
		return Anchor{}, false
	}
	href, _ := a.Attr("href")
	return Anchor{Text: a.Text(), Href: href}, true
}
