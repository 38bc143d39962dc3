package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

func newTestCache(t *testing.T) (*UserListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewUserListCache(client, time.Hour), mr
}

func TestUserListCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	if _, ok, err := cache.Get(ctx); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	users := []*domain.User{
		{ID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "h1", Roles: []string{domain.RoleUser}, Enabled: true},
		{ID: "u2", Name: "Bob", Email: "bob@example.com", PasswordHash: "h2", Roles: []string{domain.RoleAdmin}},
	}
	if err := cache.Set(ctx, users); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL(userListKey); ttl != time.Hour {
		t.Fatalf("ttl = %s, want 1h", ttl)
	}

	got, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].ID != "u1" || got[1].Email != "bob@example.com" {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if !got[0].Enabled || got[1].Roles[0] != domain.RoleAdmin {
		t.Fatalf("fields lost in cache: %+v", got[0])
	}
}

func TestUserListCache_DoesNotStorePasswordHashes(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	users := []*domain.User{{ID: "u1", Name: "Ann", Email: "ann@example.com", PasswordHash: "$2a$10$secret", Enabled: true}}
	if err := cache.Set(ctx, users); err != nil {
		t.Fatalf("set: %v", err)
	}

	raw, err := mr.Get(userListKey)
	if err != nil {
		t.Fatalf("raw get: %v", err)
	}
	if strings.Contains(raw, "$2a$10$secret") || strings.Contains(raw, "password") {
		t.Fatalf("password hash leaked into redis: %s", raw)
	}

	got, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got[0].PasswordHash != "" {
		t.Fatalf("cached user carries a hash: %q", got[0].PasswordHash)
	}
}

func TestUserListCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	if err := cache.Set(ctx, []*domain.User{{ID: "u1"}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists(userListKey) {
		t.Fatal("expected key to be removed")
	}
	if _, ok, _ := cache.Get(ctx); ok {
		t.Fatal("expected miss after invalidation")
	}
}

func TestUserListCache_CorruptValue(t *testing.T) {
	cache, mr := newTestCache(t)
	if err := mr.Set(userListKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := cache.Get(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestConnect_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatal("expected ping failure against a closed server")
	}
}
