package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/avolkov/betboard/internal/extractor"
	"github.com/avolkov/betboard/internal/parser/parsers/sportline"
	"github.com/avolkov/betboard/internal/pkg/cache"
	pkgconfig "github.com/avolkov/betboard/internal/pkg/config"
	"github.com/avolkov/betboard/internal/pkg/logging"
)

// One-shot board extraction for debugging against the live upstream:
// fetches a date's board and prints the normalized records as JSON.
func main() {
	configPath := flag.String("config", "configs/production.yaml", "Path to config file")
	date := flag.String("date", "", "Board date YYYY-MM-DD (default: today)")
	pretty := flag.Bool("pretty", true, "Indent JSON output")
	flag.Parse()

	cfg, err := pkgconfig.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.SetupLogger(&cfg.Logging, "fetch-board")

	service := extractor.NewService(cfg, extractor.Deps{
		Fetcher:     sportline.NewClient(&cfg.Upstream),
		BoardCache:  cache.NewMemoryStore(cfg.Cache.BoardTTL),
		DetailCache: cache.NewMemoryStore(cfg.Cache.DetailTTL),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result := service.Matches(ctx, *date)

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		os.Exit(1)
	}

	if len(result.Matches) == 0 {
		fmt.Fprintln(os.Stderr, "No matches extracted")
		os.Exit(2)
	}
}
