package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aluiziolira/go-scrape-lots/config"
	"github.com/aluiziolira/go-scrape-lots/console"
	"github.com/aluiziolira/go-scrape-lots/pipeline"
	"github.com/aluiziolira/go-scrape-lots/scraper"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	defaultCfg := config.DefaultConfig()
	urlDefault := defaultCfg.URL
	if value, ok := config.EnvString("LOTS_URL"); ok {
		urlDefault = value
	}
	outputDefault := defaultCfg.OutputFile
	if value, ok := config.EnvString("LOTS_OUTPUT"); ok {
		outputDefault = value
	}
	metricsDefault := defaultCfg.MetricsFile
	if value, ok := config.EnvString("LOTS_METRICS_FILE"); ok {
		metricsDefault = value
	}
	timeoutDefault := defaultCfg.Timeout
	if value, ok, err := config.EnvDuration("LOTS_TIMEOUT"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid LOTS_TIMEOUT: %v\n", err)
		os.Exit(1)
	} else if ok {
		timeoutDefault = value
	}
	cacheDefault := defaultCfg.PriceCacheSize
	if value, ok, err := config.EnvInt("LOTS_PRICE_CACHE"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid LOTS_PRICE_CACHE: %v\n", err)
		os.Exit(1)
	} else if ok {
		cacheDefault = value
	}

	pageURL := flag.String("url", urlDefault, "Auction listing URL to download")
	origin := flag.String("origin", defaultCfg.Origin, "Origin prefixed to relative lot links")
	tableID := flag.String("table-id", defaultCfg.TableID, "Element id of the listing table")
	outputFile := flag.String("output", outputDefault, "File the downloaded page is saved to")
	timeout := flag.Duration("timeout", timeoutDefault, "Request timeout (0 disables it)")
	userAgent := flag.String("user-agent", defaultCfg.UserAgent, "User-Agent header (empty keeps the default)")
	priceCache := flag.Int("price-cache", cacheDefault, "Number of parsed price strings to memoize")
	metricsFile := flag.String("metrics-file", metricsDefault, "Write Prometheus metrics to this textfile on exit")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := config.DefaultConfig()
	cfg.URL = *pageURL
	cfg.Origin = *origin
	cfg.TableID = *tableID
	cfg.OutputFile = *outputFile
	cfg.Timeout = *timeout
	cfg.UserAgent = *userAgent
	cfg.PriceCacheSize = *priceCache
	cfg.MetricsFile = *metricsFile
	cfg.Verbose = *verbose
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	s, err := scraper.NewScraper(cfg)
	if err != nil {
		slog.Error("initialising scraper", slog.Any("error", err))
		os.Exit(1)
	}

	p, err := pipeline.NewPipeline(cfg, s, pipeline.NewFileWriter(cfg.OutputFile), s.Metrics)
	if err != nil {
		slog.Error("initialising pipeline", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Debug("starting session",
		slog.String("url", cfg.URL),
		slog.String("output", cfg.OutputFile),
		slog.Duration("timeout", cfg.Timeout),
	)

	start := time.Now()
	session := console.NewSession(p, os.Stdin, os.Stdout)
	outcome, err := session.Run(context.Background())
	if err != nil {
		slog.Error("console output failed", slog.Any("error", err))
	}
	slog.Debug("session complete",
		slog.String("outcome", string(outcome)),
		slog.Duration("duration", time.Since(start)),
	)

	if err := s.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		slog.Error("metrics export failed", slog.Any("error", err))
	}
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stderr) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
