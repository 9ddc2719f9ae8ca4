package lookupcache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"keepaudio/internal/identification"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "nested", "lookups.db"), ttl, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestStoreAndLookup(t *testing.T) {
	cache := openTestCache(t, time.Hour)
	ctx := context.Background()
	movie := identification.Movie{
		ID: 496243, Title: "Parasite", ReleaseYear: 2019, HasReleaseYear: true,
		OriginalLanguage: "ko", OriginalLanguage3: "kor",
	}
	if err := cache.Store(ctx, "Parasite#2019", movie); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, ok, err := cache.Lookup(ctx, "Parasite#2019")
	if err != nil || !ok {
		t.Fatalf("Lookup: ok=%v err=%v", ok, err)
	}
	if got != movie {
		t.Fatalf("Lookup = %+v, want %+v", got, movie)
	}
}

func TestLookupMiss(t *testing.T) {
	cache := openTestCache(t, 0)
	_, ok, err := cache.Lookup(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}
	if _, ok, _ := cache.Lookup(context.Background(), " "); ok {
		t.Fatal("expected blank key to miss")
	}
}

func TestStoreWithoutYearRoundTrips(t *testing.T) {
	cache := openTestCache(t, 0)
	ctx := context.Background()
	movie := identification.Movie{ID: 7, Title: "Untitled", OriginalLanguage: "fr", OriginalLanguage3: "fra"}
	if err := cache.Store(ctx, "k", movie); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, ok, err := cache.Lookup(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Lookup: ok=%v err=%v", ok, err)
	}
	if got.HasReleaseYear {
		t.Fatalf("expected absent year, got %+v", got)
	}
}

func TestStoreReplacesExisting(t *testing.T) {
	cache := openTestCache(t, 0)
	ctx := context.Background()
	if err := cache.Store(ctx, "k", identification.Movie{ID: 1, Title: "Old", OriginalLanguage: "en"}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := cache.Store(ctx, "k", identification.Movie{ID: 2, Title: "New", OriginalLanguage: "ja"}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, _, _ := cache.Lookup(ctx, "k")
	if got.ID != 2 {
		t.Fatalf("expected replacement, got %+v", got)
	}
	entries, err := cache.List(ctx)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one entry, got %d (%v)", len(entries), err)
	}
}

func TestExpiredEntriesMissAndPrune(t *testing.T) {
	cache := openTestCache(t, time.Hour)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }
	if err := cache.Store(ctx, "old", identification.Movie{ID: 1, Title: "Old", OriginalLanguage: "en"}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	cache.now = func() time.Time { return base.Add(2 * time.Hour) }
	if err := cache.Store(ctx, "fresh", identification.Movie{ID: 2, Title: "Fresh", OriginalLanguage: "en"}); err != nil {
		t.Fatalf("Store: %v", err)
	}

	if _, ok, _ := cache.Lookup(ctx, "old"); ok {
		t.Fatal("expected expired entry to miss")
	}
	if _, ok, _ := cache.Lookup(ctx, "fresh"); !ok {
		t.Fatal("expected fresh entry to hit")
	}
	removed, err := cache.Prune(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("Prune removed %d (%v), want 1", removed, err)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ := cache.List(ctx)
	if len(entries) != 0 {
		t.Fatalf("expected empty cache, got %d entries", len(entries))
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  ", 0, nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}
