// Package parser turns the auction listing markup into lots.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// NormalizePrice keeps the ASCII digits and dots of text and parses the rest
// as a decimal number. Anything that does not parse yields 0.
func NormalizePrice(text string) float64 {
	if text == "" {
		return 0
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return 0
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return value
}

// PriceCache memoizes NormalizePrice for repeated price strings.
type PriceCache struct {
	cache *lru.Cache[string, float64]
}

// NewPriceCache builds a cache holding at most size entries.
func NewPriceCache(size int) (*PriceCache, error) {
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return nil, fmt.Errorf("create price cache: %w", err)
	}
	return &PriceCache{cache: cache}, nil
}

// Normalize returns NormalizePrice(text), consulting the cache first.
func (pc *PriceCache) Normalize(text string) float64 {
	if pc == nil || pc.cache == nil {
		return NormalizePrice(text)
	}
	if value, ok := pc.cache.Get(text); ok {
		return value
	}
	value := NormalizePrice(text)
	pc.cache.Add(text, value)
	return value
}

// Len reports how many price strings are cached.
func (pc *PriceCache) Len() int {
	if pc == nil || pc.cache == nil {
		return 0
	}
	return pc.cache.Len()
}
