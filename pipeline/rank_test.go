package pipeline

import (
	"testing"

	"github.com/aluiziolira/go-scrape-lots/models"
	"github.com/stretchr/testify/assert"
)

func TestSortByPriceDesc(t *testing.T) {
	lots := []models.Lot{
		{Name: "a", Price: 10},
		{Name: "b", Price: 30},
		{Name: "c", Price: 10},
		{Name: "d", Price: 20},
		{Name: "e", Price: 30},
		{Name: "f", Price: 0},
	}
	original := append([]models.Lot(nil), lots...)

	sorted := SortByPriceDesc(lots)

	names := make([]string, 0, len(sorted))
	for _, lot := range sorted {
		names = append(names, lot.Name)
	}
	assert.Equal(t, []string{"b", "e", "d", "a", "c", "f"}, names)
	assert.Equal(t, original, lots, "input must not be reordered")
}

func TestSortByPriceDescEmpty(t *testing.T) {
	assert.Empty(t, SortByPriceDesc(nil))
	assert.Empty(t, SortByPriceDesc([]models.Lot{}))
}

func TestFilterByPrice(t *testing.T) {
	lots := []models.Lot{
		{Name: "high", Price: 150000},
		{Name: "max edge", Price: 100000},
		{Name: "mid", Price: 75000.5},
		{Name: "min edge", Price: 50000},
		{Name: "low", Price: 49999.99},
		{Name: "free", Price: 0},
	}

	tests := []struct {
		name     string
		min, max float64
		want     []string
	}{
		{name: "inclusive bounds", min: 50000, max: 100000, want: []string{"max edge", "mid", "min edge"}},
		{name: "single point", min: 0, max: 0, want: []string{"free"}},
		{name: "everything", min: 0, max: 1e9, want: []string{"high", "max edge", "mid", "min edge", "low", "free"}},
		{name: "inverted range", min: 100000, max: 50000, want: []string{}},
		{name: "nothing in range", min: 200000, max: 300000, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByPrice(lots, tt.min, tt.max)
			names := make([]string, 0, len(got))
			for _, lot := range got {
				names = append(names, lot.Name)
				assert.True(t, tt.min <= lot.Price && lot.Price <= tt.max)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterByPriceInvertedRangeAlwaysEmpty(t *testing.T) {
	lots := []models.Lot{{Price: 50000}, {Price: 75000}, {Price: 100000}}
	for _, bounds := range [][2]float64{{100000, 50000}, {1, 0}, {0.01, 0}} {
		assert.Empty(t, FilterByPrice(lots, bounds[0], bounds[1]))
	}
}

func TestFilterByPriceEmptyInput(t *testing.T) {
	assert.Empty(t, FilterByPrice(nil, 0, 100))
}
