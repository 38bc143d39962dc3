package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

func TestMemory_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok, _ := c.Get(ctx); ok {
		t.Fatal("expected miss on empty cache")
	}

	_ = c.Set(ctx, []*domain.User{{ID: "u1", Name: "Ann", Roles: []string{domain.RoleUser}}})
	got, ok, err := c.Get(ctx)
	if err != nil || !ok || len(got) != 1 {
		t.Fatalf("expected one cached user, got %v ok=%v err=%v", got, ok, err)
	}

	got[0].Name = "changed"
	got[0].Roles[0] = domain.RoleAdmin
	again, _, _ := c.Get(ctx)
	if again[0].Name != "Ann" || again[0].Roles[0] != domain.RoleUser {
		t.Fatalf("cached entry was mutated through a returned copy: %+v", again[0])
	}

	_ = c.Invalidate(ctx)
	if _, ok, _ := c.Get(ctx); ok {
		t.Fatal("expected miss after invalidation")
	}
}

func TestMemory_EmptyListingIsAHit(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	_ = c.Set(ctx, nil)
	if _, ok, _ := c.Get(ctx); !ok {
		t.Fatal("an empty listing should still be cached")
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, []*domain.User{{ID: "u1"}})
		}()
		go func() {
			defer wg.Done()
			_, _, _ = c.Get(ctx)
			_ = c.Invalidate(ctx)
		}()
	}
	wg.Wait()
}
