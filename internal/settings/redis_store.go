package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces settings keys; bump the version to invalidate every cached entry
const keyPrefix = "settings:v1:"

// RedisStore implements Store interface using Redis
// Used standalone or as the cache layer of a CachedStore
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store
//
// Parameters:
//   - addr: Redis server address (e.g., "localhost:6379")
//   - password: Redis password (empty string if no password)
//   - db: Redis database number (0-15, default is 0)
//
// Returns:
//   - *RedisStore: pointer to the created store
//   - error: any error that occurred during connection
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test the connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// redisKey builds the Redis key for a setting
// Example: settings:v1:allowed_postcodes_lsoa
func redisKey(key string) string {
	return keyPrefix + key
}

// Get implements the Store interface
// Value: JSON-encoded string array; a missing key means the setting is absent
func (s *RedisStore) Get(ctx context.Context, key string) ([]string, bool, error) {
	val, err := s.client.Get(ctx, redisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("Redis query failed: %w", err)
	}

	var values []string
	if err := json.Unmarshal([]byte(val), &values); err != nil {
		return nil, false, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	if values == nil {
		// "null" was stored
		return nil, false, nil
	}

	return values, true, nil
}

// Set implements the Store interface (no expiration)
func (s *RedisStore) Set(ctx context.Context, key string, values []string) error {
	return s.SetWithTTL(ctx, key, values, 0)
}

// SetWithTTL stores a setting that expires after ttl (0 = never)
func (s *RedisStore) SetWithTTL(ctx context.Context, key string, values []string, ttl time.Duration) error {
	data, err := json.Marshal(cloneValues(values))
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}

	if err := s.client.Set(ctx, redisKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}

	return nil
}

// Unset implements the Store interface
func (s *RedisStore) Unset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete from Redis: %w", err)
	}
	return nil
}

// IsEmpty reports whether none of the known settings is stored
func (s *RedisStore) IsEmpty(ctx context.Context) (bool, error) {
	keys := make([]string, 0, len(Keys))
	for _, key := range Keys {
		keys = append(keys, redisKey(key))
	}

	n, err := s.client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check Redis keys: %w", err)
	}
	return n == 0, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
