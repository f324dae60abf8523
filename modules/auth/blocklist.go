package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blocklist records revoked token IDs (jti) until the token's natural
// expiry. Logout and refresh both revoke the presented token through it.
type Blocklist interface {
	// Revoke marks the token ID as revoked until expiresAt.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	// IsRevoked reports whether the token ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisBlocklist stores revoked token IDs in Redis with a TTL matching the
// remaining token lifetime, so entries clean themselves up.
type RedisBlocklist struct {
	client *redis.Client
	prefix string
}

// NewRedisBlocklist creates a blocklist backed by the given Redis client.
func NewRedisBlocklist(client *redis.Client) *RedisBlocklist {
	return &RedisBlocklist{
		client: client,
		prefix: "auth:revoked:",
	}
}

// Revoke marks the token ID as revoked until expiresAt.
func (b *RedisBlocklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	return b.client.Set(ctx, b.prefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been revoked.
func (b *RedisBlocklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, b.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryBlocklist is an in-process blocklist used when no Redis address is
// configured. Expired entries are dropped lazily on lookup and swept on
// each revoke.
type MemoryBlocklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryBlocklist creates an empty in-memory blocklist.
func NewMemoryBlocklist() *MemoryBlocklist {
	return &MemoryBlocklist{
		revoked: make(map[string]time.Time),
	}
}

// Revoke marks the token ID as revoked until expiresAt.
func (b *MemoryBlocklist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	now := time.Now()
	if !expiresAt.After(now) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.revoked[tokenID] = expiresAt
	for id, exp := range b.revoked {
		if exp.Before(now) {
			delete(b.revoked, id)
		}
	}
	return nil
}

// IsRevoked reports whether the token ID has been revoked.
func (b *MemoryBlocklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	b.mu.RLock()
	exp, ok := b.revoked[tokenID]
	b.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if exp.Before(time.Now()) {
		b.mu.Lock()
		delete(b.revoked, tokenID)
		b.mu.Unlock()
		return false, nil
	}
	return true, nil
}
