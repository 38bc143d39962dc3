package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

const (
	userListKey = "users:all"
	userListTTL = 24 * time.Hour
)

// UserListCache stores the complete user listing as one JSON value.
type UserListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserListCache wraps client. A non-positive ttl falls back to a day.
func NewUserListCache(client *redis.Client, ttl time.Duration) *UserListCache {
	if ttl <= 0 {
		ttl = userListTTL
	}
	return &UserListCache{client: client, ttl: ttl}
}

// cachedUser is the listing entry written to Redis. Password hashes are never
// stored; users come back from the cache without one.
type cachedUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Roles      []string  `json:"roles"`
	Registered time.Time `json:"registered"`
	Enabled    bool      `json:"enabled"`
}

func (c *UserListCache) Get(ctx context.Context) ([]*domain.User, bool, error) {
	raw, err := c.client.Get(ctx, userListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("user cache get: %w", err)
	}

	var cached []cachedUser
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("user cache decode: %w", err)
	}
	users := make([]*domain.User, 0, len(cached))
	for _, u := range cached {
		users = append(users, &domain.User{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Roles:      u.Roles,
			Registered: u.Registered,
			Enabled:    u.Enabled,
		})
	}
	return users, true, nil
}

func (c *UserListCache) Set(ctx context.Context, users []*domain.User) error {
	cached := make([]cachedUser, 0, len(users))
	for _, u := range users {
		cached = append(cached, cachedUser{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Roles:      u.Roles,
			Registered: u.Registered,
			Enabled:    u.Enabled,
		})
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	if err := c.client.Set(ctx, userListKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("user cache set: %w", err)
	}
	return nil
}

func (c *UserListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, userListKey).Err(); err != nil {
		return fmt.Errorf("user cache invalidate: %w", err)
	}
	return nil
}
