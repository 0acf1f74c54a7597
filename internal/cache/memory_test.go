package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryCacheSetAndGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()
	gen, ok := c.Generation(ctx)
	if !ok {
		t.Fatal("memory cache generation should always be available")
	}

	var got []string
	if c.GetJSON(ctx, gen, "k", &got) {
		t.Error("expected miss on empty cache")
	}

	c.SetJSON(ctx, gen, "k", []string{"a", "b"})
	if !c.GetJSON(ctx, gen, "k", &got) {
		t.Fatal("expected hit")
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v", got)
	}
}

func TestMemoryCacheReturnsCopies(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	src := []string{"a"}
	c.SetJSON(ctx, 0, "k", src)
	src[0] = "mutated"

	var got []string
	c.GetJSON(ctx, 0, "k", &got)
	if got[0] != "a" {
		t.Errorf("cached value changed with its source: %v", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	c.SetJSON(ctx, 0, "k", 1)

	var got int
	if !c.GetJSON(ctx, 0, "k", &got) {
		t.Fatal("expected hit before expiry")
	}
	now = now.Add(2 * time.Minute)
	if c.GetJSON(ctx, 0, "k", &got) {
		t.Error("expected miss after expiry")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on read, %d left", c.Len())
	}
}

func TestMemoryCacheSetSweepsExpired(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	c.SetJSON(ctx, 0, "old-1", 1)
	c.SetJSON(ctx, 0, "old-2", 2)
	now = now.Add(2 * time.Minute)
	c.SetJSON(ctx, 0, "fresh", 3)

	if c.Len() != 1 {
		t.Errorf("expected only the fresh entry, got %d entries", c.Len())
	}
}

func TestMemoryCacheInvalidateAll(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	c.SetJSON(ctx, 0, "a", 1)
	c.SetJSON(ctx, 0, "b", 2)

	c.InvalidateAll(ctx)
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if gen, _ := c.Generation(ctx); gen != 1 {
		t.Errorf("generation: got %d, want 1", gen)
	}
}

func TestMemoryCacheDropsStaleGeneration(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	// A read starts under generation 0, a write clears the cache, then the
	// read tries to store what it loaded.
	before, _ := c.Generation(ctx)
	c.InvalidateAll(ctx)
	c.SetJSON(ctx, before, "posts:all", []string{"stale"})

	after, _ := c.Generation(ctx)
	var got []string
	if c.GetJSON(ctx, after, "posts:all", &got) {
		t.Errorf("stale result served after invalidation: %v", got)
	}
	if c.GetJSON(ctx, before, "posts:all", &got) {
		t.Error("old generation should never hit")
	}
	if c.Len() != 0 {
		t.Errorf("stale result stored, %d entries", c.Len())
	}
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			gen, _ := c.Generation(ctx)
			c.SetJSON(ctx, gen, "k", n)
			var got int
			c.GetJSON(ctx, gen, "k", &got)
			if n%5 == 0 {
				c.InvalidateAll(ctx)
			}
		}(i)
	}
	wg.Wait()
}

func TestNewMemoryCacheDefaultTTL(t *testing.T) {
	c := NewMemoryCache(0)
	if c.ttl != DefaultQueryTTL {
		t.Errorf("expected DefaultQueryTTL (%v), got %v", DefaultQueryTTL, c.ttl)
	}
}
