package pipeline

import (
	"slices"

	"github.com/aluiziolira/go-scrape-lots/models"
)

// SortByPriceDesc returns a copy of lots ordered by price, highest first.
// Lots with equal prices keep their input order.
func SortByPriceDesc(lots []models.Lot) []models.Lot {
	sorted := slices.Clone(lots)
	slices.SortStableFunc(sorted, func(a, b models.Lot) int {
		switch {
		case a.Price > b.Price:
			return -1
		case a.Price < b.Price:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// FilterByPrice returns the lots with minPrice <= price <= maxPrice in input
// order. An inverted range matches nothing.
func FilterByPrice(lots []models.Lot, minPrice, maxPrice float64) []models.Lot {
	matched := make([]models.Lot, 0, len(lots))
	for _, lot := range lots {
		if minPrice <= lot.Price && lot.Price <= maxPrice {
			matched = append(matched, lot)
		}
	}
	return matched
}
