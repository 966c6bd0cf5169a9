package cache

import (
	"context"
	"testing"

	"cart_service/internal/core/domain"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if _, ok := c.Get(ctx, 1); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, domain.Product{ID: 1, Title: "Sneaker", Price: 179.9})
	c.Set(ctx, domain.Product{ID: 0, Title: "ignored"})

	p, ok := c.Get(ctx, 1)
	if !ok || p.Title != "Sneaker" {
		t.Fatalf("expected hit, got ok=%v p=%+v", ok, p)
	}
	if n := c.Len(ctx); n != 1 {
		t.Fatalf("expected len 1, got %d", n)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit / 1 miss, got %d / %d", hits, misses)
	}
}

func TestStatsHitRatio(t *testing.T) {
	s := NewStats()
	if r := s.HitRatio(); r != 0 {
		t.Fatalf("expected 0, got %v", r)
	}
	s.IncHit()
	s.IncHit()
	s.IncHit()
	s.IncMiss()
	if r := s.HitRatio(); r != 0.75 {
		t.Fatalf("expected 0.75, got %v", r)
	}
}
