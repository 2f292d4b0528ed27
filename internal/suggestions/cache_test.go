package suggestions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDataset(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
}

func TestCacheMissingFileNoRefresher(t *testing.T) {
	cache := NewDatasetCache(CacheConfig{
		Path: filepath.Join(t.TempDir(), "partners.json"),
	})

	dataset, scoring, err := cache.Load(context.Background(), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if dataset != nil || scoring != nil {
		t.Error("missing dataset should yield nil, nil")
	}
}

func TestCacheRefreshProducesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.json")
	calls := 0
	cache := NewDatasetCache(CacheConfig{
		Path: path,
		Refresh: func(ctx context.Context, force bool) error {
			calls++
			writeDataset(t, path, sampleDataset)
			return nil
		},
	})

	dataset, scoring, err := cache.Load(context.Background(), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if dataset == nil || scoring == nil {
		t.Fatal("refresh created the file, Load should return the dataset")
	}
	if calls != 1 {
		t.Errorf("refresh called %d times, want 1", calls)
	}
	if len(dataset.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(dataset.Entries))
	}
}

func TestCacheRefreshAttemptedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.json")
	calls := 0
	cache := NewDatasetCache(CacheConfig{
		Path: path,
		Refresh: func(ctx context.Context, force bool) error {
			calls++
			return nil // refresher runs but produces nothing
		},
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		dataset, _, err := cache.Load(ctx, false)
		if err != nil {
			t.Fatalf("Load %d: %v", i, err)
		}
		if dataset != nil {
			t.Fatalf("Load %d returned a dataset for a missing file", i)
		}
	}
	if calls != 1 {
		t.Errorf("automatic refresh called %d times, want 1", calls)
	}

	// An explicit force resets the guard and retries immediately.
	if _, _, err := cache.Load(ctx, true); err != nil {
		t.Fatalf("forced Load: %v", err)
	}
	if calls != 2 {
		t.Errorf("refresh called %d times after force, want 2", calls)
	}
}

func TestCacheReusesParseUntilMtimeChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.json")
	writeDataset(t, path, sampleDataset)

	cache := NewDatasetCache(CacheConfig{Path: path})
	ctx := context.Background()

	first, _, err := cache.Load(ctx, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, _, err := cache.Load(ctx, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Error("unchanged mtime should reuse the cached parse")
	}

	// Bump the mtime explicitly; filesystems can be coarse-grained.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	third, _, err := cache.Load(ctx, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if third == first {
		t.Error("changed mtime should trigger a reparse")
	}
}

func TestCacheInvalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.json")
	writeDataset(t, path, sampleDataset)

	cache := NewDatasetCache(CacheConfig{Path: path})
	ctx := context.Background()

	first, _, err := cache.Load(ctx, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cache.Invalidate()
	second, _, err := cache.Load(ctx, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first == second {
		t.Error("Invalidate should force a reparse")
	}
}

func TestCacheParseErrorPropagates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.json")
	writeDataset(t, path, "{broken")

	cache := NewDatasetCache(CacheConfig{Path: path})
	if _, _, err := cache.Load(context.Background(), false); err == nil {
		t.Error("structurally invalid file should be an error")
	}
}
