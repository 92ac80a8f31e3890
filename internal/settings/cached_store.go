package settings

import (
	"context"
	"time"

	"github.com/evyataryagoni/postcode-checker/internal/logger"
)

// CachedStore is a read-through cache in front of a durable store
// Reads are served from the cache when possible; writes go to the primary
// store and invalidate the cached entry.
// Cache failures never fail a read, the primary store is the source of truth.
type CachedStore struct {
	primary Store
	cache   *RedisStore
	ttl     time.Duration
	logger  *logger.Logger
}

// NewCachedStore wraps primary with a Redis cache whose entries live for ttl
// log is optional and receives failed invalidations
func NewCachedStore(primary Store, cache *RedisStore, ttl time.Duration, log *logger.Logger) *CachedStore {
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedStore{
		primary: primary,
		cache:   cache,
		ttl:     ttl,
		logger:  log.WithComponent("CachedStore"),
	}
}

// Get implements the Store interface
// Absent settings are not cached
func (s *CachedStore) Get(ctx context.Context, key string) ([]string, bool, error) {
	if values, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return values, true, nil
	}

	values, ok, err := s.primary.Get(ctx, key)
	if err != nil || !ok {
		return values, ok, err
	}

	// Best effort, a failed fill only costs a primary read next time
	_ = s.cache.SetWithTTL(ctx, key, values, s.ttl)

	return values, true, nil
}

// Set implements the Store interface
// Once the primary write succeeds the call succeeds; a failed invalidation
// leaves a stale entry until its TTL expires
func (s *CachedStore) Set(ctx context.Context, key string, values []string) error {
	if err := s.primary.Set(ctx, key, values); err != nil {
		return err
	}
	s.invalidate(ctx, key)
	return nil
}

// Unset implements the Store interface
func (s *CachedStore) Unset(ctx context.Context, key string) error {
	if err := s.primary.Unset(ctx, key); err != nil {
		return err
	}
	s.invalidate(ctx, key)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, key string) {
	if err := s.cache.Unset(ctx, key); err != nil {
		s.logger.Warn().
			Err(err).
			Str("setting", key).
			Dur("ttl", s.ttl).
			Msg("Failed to invalidate cached setting, stale until expiry")
	}
}

// Close closes both the primary store and the cache
func (s *CachedStore) Close() error {
	primaryErr := s.primary.Close()
	cacheErr := s.cache.Close()
	if primaryErr != nil {
		return primaryErr
	}
	return cacheErr
}
