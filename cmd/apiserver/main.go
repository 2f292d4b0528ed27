// Package main provides the REST API server for commander pairing and
// partner suggestions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mtgkit/edh-companion/internal/api"
	"github.com/mtgkit/edh-companion/internal/catalog"
	"github.com/mtgkit/edh-companion/internal/config"
	"github.com/mtgkit/edh-companion/internal/suggestions"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	configPath  = flag.String("config", "", "Config file path (default: ~/.edh-companion/config.toml)")
	dbPath      = flag.String("db-path", "", "Commander database path (overrides config)")
	datasetPath = flag.String("dataset", "", "Partner dataset JSON path (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Catalog.DBPath = *dbPath
	}
	if *datasetPath != "" {
		cfg.Dataset.Path = *datasetPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if cfg.Dataset.Path == "" {
		log.Fatal("A partner dataset path is required (-dataset or [dataset] path in config)")
	}

	logger := newLogger(cfg.App.DebugMode)
	slog.SetDefault(logger)

	fmt.Println("EDH Companion - REST API Server")
	fmt.Println("===============================")
	fmt.Println()
	fmt.Printf("Dataset: %s\n", cfg.Dataset.Path)

	interval, _ := cfg.GetRefreshInterval()
	cache := suggestions.NewDatasetCache(suggestions.CacheConfig{
		Path:            cfg.Dataset.Path,
		Refresh:         refreshFunc(cfg, logger),
		RefreshInterval: interval,
		Logger:          logger,
	})

	service, err := suggestions.NewService(suggestions.ServiceConfig{
		Cache:  cache,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create suggestion service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, cleanup, err := buildCatalog(ctx, cfg, cache, logger)
	if err != nil {
		log.Fatalf("Failed to build commander catalog: %v", err)
	}
	defer cleanup()

	if cfg.Dataset.Watch {
		watcher, err := suggestions.NewWatcher(cache, logger)
		if err != nil {
			logger.Warn("dataset watcher disabled", "error", err)
		} else {
			watcher.Start(ctx)
			defer watcher.Close()
		}
	}

	server := api.NewServer(&api.Config{Port: cfg.Server.Port}, cat, service)
	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	fmt.Println()
	fmt.Printf("API server running at http://localhost:%d\n", server.Port())
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("API server stopped.")
}

func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.LoadFrom(*configPath)
	}
	return config.Load()
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// refreshFunc turns the configured refresh command into a dataset refresher.
// Returns nil when auto-refresh is disabled or no command is configured.
func refreshFunc(cfg *config.Config, logger *slog.Logger) suggestions.RefreshFunc {
	if !cfg.Dataset.AutoRefresh || cfg.Dataset.RefreshCommand == "" {
		return nil
	}
	parts := strings.Fields(cfg.Dataset.RefreshCommand)
	return func(ctx context.Context, force bool) error {
		logger.Info("running dataset refresh command", "command", cfg.Dataset.RefreshCommand, "force", force)
		cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
}

// buildCatalog resolves the commander catalog: the SQLite store when a
// database is configured, otherwise an in-memory catalog seeded from the
// dataset. An empty store is seeded from the dataset on first run.
func buildCatalog(ctx context.Context, cfg *config.Config, cache *suggestions.DatasetCache, logger *slog.Logger) (catalog.Catalog, func(), error) {
	noop := func() {}

	if cfg.Catalog.DBPath == "" {
		cat := catalog.NewMemoryCatalog()
		for _, entry := range datasetEntries(ctx, cache, logger) {
			cat.Add(entry.Commander)
		}
		return cat, noop, nil
	}

	storeConfig := catalog.DefaultStoreConfig(cfg.Catalog.DBPath)
	storeConfig.AutoMigrate = true
	store, err := catalog.OpenStore(storeConfig)
	if err != nil {
		return nil, noop, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("error closing commander store", "error", err)
		}
	}

	cat, err := store.LoadCatalog(ctx)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	if cat.Len() == 0 {
		logger.Info("commander store is empty, seeding from dataset", "path", cfg.Catalog.DBPath)
		for _, entry := range datasetEntries(ctx, cache, logger) {
			if err := store.UpsertCommander(ctx, entry.Commander); err != nil {
				cleanup()
				return nil, noop, err
			}
		}
		if cat, err = store.LoadCatalog(ctx); err != nil {
			cleanup()
			return nil, noop, err
		}
	}
	return cat, cleanup, nil
}

// datasetEntries loads the dataset once for catalog seeding. An unavailable
// dataset yields no entries; the catalog starts empty and fills on restart.
func datasetEntries(ctx context.Context, cache *suggestions.DatasetCache, logger *slog.Logger) []*suggestions.CommanderEntry {
	dataset, _, err := cache.Load(ctx, false)
	if err != nil {
		logger.Warn("dataset load failed during catalog seeding", "error", err)
		return nil
	}
	if dataset == nil {
		return nil
	}
	return dataset.Entries
}
