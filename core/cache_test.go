package core

import (
	"fmt"
	"testing"
	"time"
)

// Requirement: a cached record is returned until its TTL elapses, after which
// the cache reports a miss and drops the entry.
func TestInMemoryCache_GetSetTTL(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{TTL: 50 * time.Millisecond, MaxSize: 10})

	user := &UserRecord{ID: "u1", Email: "jane@x.com"}
	if err := cache.Set("hash-1", user); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get("hash-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("Get() email = %q, want %q", got.Email, user.Email)
	}

	time.Sleep(60 * time.Millisecond)

	if _, err := cache.Get("hash-1"); err != ErrCacheNotFound {
		t.Errorf("Get() after TTL error = %v, want ErrCacheNotFound", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Len() after expiry = %d, want 0", cache.Len())
	}
}

// Requirement: a miss on an unknown key returns ErrCacheNotFound.
func TestInMemoryCache_Miss(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{})

	if _, err := cache.Get("unknown"); err != ErrCacheNotFound {
		t.Errorf("Get() error = %v, want ErrCacheNotFound", err)
	}
}

// Requirement: Delete removes an entry; Clear drops all entries.
func TestInMemoryCache_DeleteClear(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{})

	_ = cache.Set("a", &UserRecord{ID: "u1"})
	_ = cache.Set("b", &UserRecord{ID: "u2"})

	if err := cache.Delete("a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := cache.Get("a"); err != ErrCacheNotFound {
		t.Errorf("Get() after Delete error = %v, want ErrCacheNotFound", err)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", cache.Len())
	}
}

// Requirement: the cache evicts an entry instead of growing past MaxSize.
func TestInMemoryCache_Eviction(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{MaxSize: 3})

	for i := 0; i < 5; i++ {
		_ = cache.Set(fmt.Sprintf("hash-%d", i), &UserRecord{ID: fmt.Sprintf("u%d", i)})
	}

	if cache.Len() > 3 {
		t.Errorf("Len() = %d, want at most 3", cache.Len())
	}
	if stats := cache.Stats(); stats.Evictions == 0 {
		t.Error("Stats().Evictions = 0, want at least one eviction")
	}
}

// Requirement: stats counters track hits, misses, and sets.
func TestInMemoryCache_Stats(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{})

	_ = cache.Set("a", &UserRecord{ID: "u1"})
	_, _ = cache.Get("a")
	_, _ = cache.Get("missing")

	stats := cache.Stats()
	if stats.Hits != 1 {
		t.Errorf("Stats().Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Stats().Misses = %d, want 1", stats.Misses)
	}
	if stats.Sets != 1 {
		t.Errorf("Stats().Sets = %d, want 1", stats.Sets)
	}
}
