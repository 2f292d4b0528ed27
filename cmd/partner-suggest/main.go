// Package main provides a command-line front end for partner suggestions:
// given a commander name it prints ranked candidates per pairing mode and
// can render the scores as an interactive chart.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/mtgkit/edh-companion/internal/charts"
	"github.com/mtgkit/edh-companion/internal/commander"
	"github.com/mtgkit/edh-companion/internal/config"
	"github.com/mtgkit/edh-companion/internal/suggestions"
)

var (
	datasetPath = flag.String("dataset", "", "Partner dataset JSON path (overrides config)")
	configPath  = flag.String("config", "", "Config file path (default: ~/.edh-companion/config.toml)")
	limit       = flag.Int("limit", 5, "Max suggestions per pairing mode (0 = unlimited)")
	minScore    = flag.Float64("min-score", 0.15, "Drop candidates scoring below this")
	modesFlag   = flag.String("modes", "", "Comma-separated pairing modes to include (default all)")
	refresh     = flag.Bool("refresh", false, "Force a dataset reload before scoring")
	chartPath   = flag.String("chart", "", "Write an interactive score chart to this HTML file")
	openChart   = flag.Bool("open", false, "Open the rendered chart in a browser")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: partner-suggest [flags] <commander name>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	name := flag.Arg(0)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	path := *datasetPath
	if path == "" {
		path = cfg.Dataset.Path
	}
	if path == "" {
		log.Fatal("A partner dataset path is required (-dataset or [dataset] path in config)")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	service, err := suggestions.NewService(suggestions.ServiceConfig{
		Cache: suggestions.NewDatasetCache(suggestions.CacheConfig{
			Path:   path,
			Logger: logger,
		}),
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create suggestion service: %v", err)
	}

	opts := suggestions.Options{
		LimitPerMode: *limit,
		MinScore:     *minScore,
		Refresh:      *refresh,
	}
	if *modesFlag != "" {
		for _, raw := range strings.Split(*modesFlag, ",") {
			mode := commander.ParseMode(raw)
			if mode == commander.ModeNone {
				log.Fatalf("Unknown pairing mode %q", raw)
			}
			opts.IncludeModes = append(opts.IncludeModes, mode)
		}
	}

	result, err := service.GetPartnerSuggestions(context.Background(), name, opts)
	if err != nil {
		log.Fatalf("Failed to get suggestions: %v", err)
	}
	if result == nil {
		log.Fatalf("Partner dataset is unavailable at %s", path)
	}
	if result.Total == 0 {
		fmt.Printf("No partner suggestions for %q.\n", name)
		return
	}

	printResult(result)

	if *chartPath != "" {
		if err := charts.RenderSuggestionChart(result, charts.DefaultChartConfig(), *chartPath); err != nil {
			log.Fatalf("Failed to render chart: %v", err)
		}
		fmt.Printf("\nChart written to %s\n", *chartPath)
		if *openChart {
			if err := charts.OpenInBrowser(*chartPath); err != nil {
				log.Printf("Failed to open browser: %v", err)
			}
		}
	}
}

func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.LoadFrom(*configPath)
	}
	return config.Load()
}

func printResult(result *suggestions.Result) {
	fmt.Printf("Partner suggestions for %s\n", result.DisplayName)
	fmt.Println(strings.Repeat("=", 24+len(result.DisplayName)))

	for _, mode := range commander.ModePrecedence {
		group := result.ByMode[mode]
		if len(group) == 0 {
			continue
		}

		fmt.Printf("\n%s\n", mode.Label())
		fmt.Println(strings.Repeat("-", len(mode.Label())))
		for i, s := range group {
			fmt.Printf("%2d. %-40s %3d%%  %s\n", i+1, s.DisplayName, s.ScorePercent, s.ColorLabel)
			fmt.Printf("    %s\n", s.Summary)
		}
	}

	fmt.Printf("\n%d suggestions total.\n", result.Total)
}
