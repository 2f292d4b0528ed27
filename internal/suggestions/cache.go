package suggestions

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RefreshFunc regenerates the dataset file. It is invoked at most once per
// missing-file episode, with force indicating an explicit caller request.
// The cache does not care how the file is produced, only that it may exist
// after the call returns.
type RefreshFunc func(ctx context.Context, force bool) error

// DatasetCache owns the parsed dataset together with its invalidation state:
// the source file's modification time in nanoseconds. All access is
// exclusive under one mutex, so concurrent callers never observe a
// half-updated cache and never trigger duplicate reloads.
type DatasetCache struct {
	mu sync.Mutex

	path    string
	refresh RefreshFunc
	limiter *rate.Limiter
	logger  *slog.Logger

	data             *PartnerDataset
	scoring          *Context
	mtimeNS          int64
	refreshAttempted bool
}

// CacheConfig configures the dataset cache.
type CacheConfig struct {
	// Path is the dataset JSON file.
	Path string

	// Refresh is the external regeneration hook, called when the file is
	// missing. Optional.
	Refresh RefreshFunc

	// RefreshInterval is the minimum spacing between refresh attempts
	// (default: 30 seconds). Protects the external regenerator from being
	// hammered by repeated missing-dataset requests.
	RefreshInterval time.Duration

	Logger *slog.Logger
}

// NewDatasetCache creates a cache for the dataset at config.Path.
func NewDatasetCache(config CacheConfig) *DatasetCache {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	interval := config.RefreshInterval
	if interval == 0 {
		interval = 30 * time.Second
	}
	return &DatasetCache{
		path:    config.Path,
		refresh: config.Refresh,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  config.Logger,
	}
}

// Load returns the parsed dataset, reusing the cached parse while the file's
// mtime is unchanged. A missing file triggers exactly one automatic refresh
// attempt; if the file is still missing afterwards Load returns (nil, nil)
// and will not retry until the caller passes force. A structurally invalid
// file is an error.
func (c *DatasetCache) Load(ctx context.Context, force bool) (*PartnerDataset, *Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if force {
		c.refreshAttempted = false
	}

	info, err := os.Stat(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("stat dataset file: %w", err)
		}
		if c.refreshAttempted {
			return nil, nil, nil
		}
		c.refreshAttempted = true
		if c.refresh == nil {
			return nil, nil, nil
		}
		// Explicit force bypasses the limiter; only automatic attempts
		// are throttled.
		if !force && !c.limiter.Allow() {
			return nil, nil, nil
		}
		c.logger.Info("partner dataset missing, attempting refresh", "path", c.path)
		if err := c.refresh(ctx, force); err != nil {
			c.logger.Warn("partner dataset refresh failed", "error", err)
			return nil, nil, nil
		}
		info, err = os.Stat(c.path)
		if err != nil {
			return nil, nil, nil
		}
	}

	mtime := info.ModTime().UnixNano()
	if c.data != nil && c.mtimeNS == mtime && !force {
		return c.data, c.scoring, nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset file: %w", err)
	}
	dataset, err := ParseDataset(data)
	if err != nil {
		return nil, nil, err
	}

	c.data = dataset
	c.scoring = NewContext(dataset.Entries, dataset.Pairings)
	c.mtimeNS = mtime
	c.refreshAttempted = false
	c.logger.Info("partner dataset loaded",
		"path", c.path,
		"commanders", len(dataset.Entries))
	return c.data, c.scoring, nil
}

// Invalidate drops the cached parse so the next Load rereads the file.
func (c *DatasetCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.scoring = nil
	c.mtimeNS = 0
}
