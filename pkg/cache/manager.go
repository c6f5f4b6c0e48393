// Package cache provides an optional redis-backed cache for catalog page
// responses. The upstream exposes no validators (ETag/Expires), so entries
// live for a fixed TTL and are keyed on the full request URL including the
// pagination cursor.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss indicates the requested key was not found in cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the cache entry is invalid or corrupted.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// DefaultTTL is the fallback entry lifetime when none is configured.
const DefaultTTL = 5 * time.Minute

// Entry is a cached page response.
type Entry struct {
	// Data is the raw response body.
	Data []byte `json:"data"`

	// StoredAt is when the response was cached.
	StoredAt time.Time `json:"stored_at"`
}

// Manager handles page caching operations with a redis backend.
type Manager struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewManager creates a cache manager. A non-positive ttl falls back to
// DefaultTTL.
func NewManager(redisClient *redis.Client, ttl time.Duration) *Manager {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		redis: redisClient,
		ttl:   ttl,
	}
}

// TTL returns the configured entry lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Get retrieves the cached body for a request URL.
// Returns ErrCacheMiss if the key doesn't exist or has expired.
func (m *Manager) Get(ctx context.Context, requestURL string) ([]byte, error) {
	data, err := m.redis.Get(ctx, PageKey(requestURL)).Bytes()
	if err != nil {
		if err == redis.Nil {
			CacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	CacheHits.Inc()
	return entry.Data, nil
}

// Set stores a response body under the request URL with the configured TTL.
// Redis evicts the entry when the TTL elapses.
func (m *Manager) Set(ctx context.Context, requestURL string, body []byte) error {
	entry := Entry{
		Data:     body,
		StoredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := m.redis.Set(ctx, PageKey(requestURL), data, m.ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	CacheSize.Add(float64(len(data)))
	return nil
}

// Delete removes a cached page.
func (m *Manager) Delete(ctx context.Context, requestURL string) error {
	if err := m.redis.Del(ctx, PageKey(requestURL)).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
