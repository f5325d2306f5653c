package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKeyValueStore keeps values in Redis. Keys matching a registered prefix expire
// after that prefix's TTL; everything else is stored without expiry.
type RedisKeyValueStore struct {
	client *redis.Client
	ttls   map[string]time.Duration
}

// NewRedisKeyValueStore creates a new instance of RedisKeyValueStore.
func NewRedisKeyValueStore(client *redis.Client) *RedisKeyValueStore {
	return &RedisKeyValueStore{
		client: client,
		ttls:   make(map[string]time.Duration),
	}
}

// WithPrefixTTL makes every key starting with prefix expire ttl after its last write.
func (s *RedisKeyValueStore) WithPrefixTTL(prefix string, ttl time.Duration) *RedisKeyValueStore {
	s.ttls[prefix] = ttl
	return s
}

// Get retrieves the value stored under key.
func (s *RedisKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s failed: %w", key, err)
	}
	return data, nil
}

// Set overwrites the value stored under key.
func (s *RedisKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttlFor(key)).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *RedisKeyValueStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s failed: %w", key, err)
	}
	return nil
}

func (s *RedisKeyValueStore) ttlFor(key string) time.Duration {
	for prefix, ttl := range s.ttls {
		if strings.HasPrefix(key, prefix) {
			return ttl
		}
	}
	return 0
}
