// File: internal/session/blocklist.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Blocklist remembers bearer tokens that were logged out so the gateway stops forwarding them.
type Blocklist interface {
	// Revoke blocks token until expiresAt.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	// Restore lifts a revocation, used when the upstream hands the same token out again.
	Restore(ctx context.Context, token string) error
}

// InMemoryBlocklist is a Blocklist backed by an expiring in-process cache.
type InMemoryBlocklist struct {
	mu    sync.RWMutex
	cache *cache.Cache
}

var _ Blocklist = (*InMemoryBlocklist)(nil)

// NewInMemoryBlocklist creates a blocklist whose expired entries are purged every cleanupInterval.
func NewInMemoryBlocklist(cleanupInterval time.Duration) *InMemoryBlocklist {
	return &InMemoryBlocklist{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

// Revoke is a no-op for tokens that have already expired.
func (b *InMemoryBlocklist) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return nil
	}
	duration := time.Until(expiresAt)
	if duration <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.Set(Key(token), true, duration)
	return nil
}

func (b *InMemoryBlocklist) IsRevoked(_ context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, found := b.cache.Get(Key(token))
	return found, nil
}

func (b *InMemoryBlocklist) Restore(_ context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.Delete(Key(token))
	return nil
}
