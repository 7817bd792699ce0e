// Package cache keeps computed verification and match results keyed by
// listing and profile so repeated lookups skip the engines.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is a byte-oriented key/value cache with per-entry TTL.
// A TTL of zero means the entry does not expire.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// VerifyKey is the cache key for a listing's verification result.
func VerifyKey(listingID string) string {
	return "verify:" + listingID
}

// MatchKey is the cache key for a profile's match against a listing.
func MatchKey(profileID, listingID string) string {
	return fmt.Sprintf("match:%s:%s", profileID, listingID)
}

// GetJSON loads key into v. It returns ErrMiss when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return nil
}

// SetJSON stores v under key, overwriting any previous entry.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data, ttl)
}

// sweepInterval is how often an opened MemoryStore drops expired entries
const sweepInterval = time.Minute

// Open builds the Store selected by backend: "memory" (or empty) or "redis".
func Open(ctx context.Context, backend string, rc RedisConfig) (Store, error) {
	switch backend {
	case "", "memory":
		m := NewMemoryStore()
		m.StartSweeper(sweepInterval)
		return m, nil
	case "redis":
		return NewRedisStore(ctx, rc)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
