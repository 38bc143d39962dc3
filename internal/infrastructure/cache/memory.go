// Package cache holds the in-process user listing cache used when no Redis
// backend is configured.
package cache

import (
	"context"
	"sync"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// Memory is a process-local ports.UserListCache.
type Memory struct {
	mu    sync.RWMutex
	users []*domain.User
	ok    bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) ([]*domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.ok {
		return nil, false, nil
	}
	return clone(m.users), true, nil
}

func (m *Memory) Set(_ context.Context, users []*domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = clone(users)
	m.ok = true
	return nil
}

func (m *Memory) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = nil
	m.ok = false
	return nil
}

// clone copies the listing so callers cannot mutate cached entries. Password
// hashes are dropped, matching the Redis cache.
func clone(users []*domain.User) []*domain.User {
	out := make([]*domain.User, len(users))
	for i, u := range users {
		c := *u
		c.PasswordHash = ""
		c.Roles = append([]string(nil), u.Roles...)
		out[i] = &c
	}
	return out
}
