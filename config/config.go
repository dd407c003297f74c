package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds scraper configuration.
type Config struct {
	URL            string
	Origin         string
	TableID        string
	OutputFile     string
	Timeout        time.Duration // zero disables the request timeout
	UserAgent      string        // empty keeps the collector default
	PriceCacheSize int
	MetricsFile    string
	Verbose        bool
}

// DefaultConfig returns the defaults for the torgi.org open auction list.
func DefaultConfig() *Config {
	return &Config{
		URL:            "https://torgi.org/index.php?class=Auction&action=List&mod=Open&AuctionType=All",
		Origin:         "https://torgi.org",
		TableID:        "auction-table",
		OutputFile:     "torgi_page.html",
		Timeout:        0,
		UserAgent:      "",
		PriceCacheSize: 256,
		MetricsFile:    "",
		Verbose:        false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL must include a host")
	}

	if c.Origin == "" {
		return fmt.Errorf("origin cannot be empty")
	}
	if strings.TrimSpace(c.TableID) == "" {
		return fmt.Errorf("table id cannot be empty")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.PriceCacheSize <= 0 {
		return fmt.Errorf("price cache size must be positive")
	}

	return nil
}
