// Package models defines data structures shared by the lot scraper.
package models

// Lot is one auction item taken from the listing table.
type Lot struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Link  string  `json:"link"`
}

// Extraction holds the lots found in one document plus row accounting.
type Extraction struct {
	Lots       []Lot
	TableFound bool
	Rows       int
	Skipped    map[string]int
}
