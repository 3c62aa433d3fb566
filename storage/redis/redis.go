// Package redis provides a Redis-backed GrantStore implementation for
// multi-instance deployments. Grants are stored as JSON values with a Redis
// TTL matching their expiry; redemption uses GETDEL so a grant can be taken
// by at most one instance.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/giantswarm/mcp-gate/storage"
)

// DefaultKeyPrefix is prepended to grant codes to form Redis keys.
const DefaultKeyPrefix = "gate:grant:"

// Config contains configuration options for the Redis grant store.
type Config struct {
	// Client is the Redis client instance
	Client *redis.Client

	// KeyPrefix is the prefix for all Redis keys.
	// Default: "gate:grant:"
	KeyPrefix string
}

// Store implements storage.GrantStore using Redis.
type Store struct {
	client    *redis.Client
	keyPrefix string
}

// Compile-time interface check
var _ storage.GrantStore = (*Store)(nil)

// New creates a new Redis-backed grant store.
func New(config Config) (*Store, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultKeyPrefix
	}

	return &Store{
		client:    config.Client,
		keyPrefix: config.KeyPrefix,
	}, nil
}

// Put saves a grant with a TTL derived from its expiry instant. Grants that
// are already expired are not stored.
func (s *Store) Put(ctx context.Context, grant *storage.Grant) error {
	if grant == nil {
		return fmt.Errorf("grant cannot be nil")
	}
	if grant.Code == "" {
		return fmt.Errorf("grant code cannot be empty")
	}

	ttl := time.Until(grant.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("grant is already expired")
	}

	data, err := json.Marshal(grant)
	if err != nil {
		return fmt.Errorf("failed to marshal grant: %w", err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+grant.Code, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store grant: %w", err)
	}
	return nil
}

// Take atomically retrieves and removes a grant via GETDEL. Redis TTL
// eviction handles most expirations; the explicit expiry check covers the
// window between logical expiry and eviction.
func (s *Store) Take(ctx context.Context, code string) (*storage.Grant, error) {
	result := s.client.GetDel(ctx, s.keyPrefix+code)
	if err := result.Err(); err != nil {
		if err == redis.Nil {
			return nil, storage.ErrGrantNotFound
		}
		return nil, fmt.Errorf("failed to take grant: %w", err)
	}

	var grant storage.Grant
	if err := json.Unmarshal([]byte(result.Val()), &grant); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grant: %w", err)
	}

	if grant.Expired(time.Now()) {
		return nil, storage.ErrGrantNotFound
	}
	return &grant, nil
}
