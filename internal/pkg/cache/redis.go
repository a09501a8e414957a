package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// envelope is the stored value shape: Redis has its own TTL clock, so the
// write timestamp travels inside the value.
type envelope struct {
	Data     json.RawMessage `json:"data"`
	StoredAt time.Time       `json:"stored_at"`
}

// RedisStore is a Store backed by Redis, for deployments where several
// board processes should share one upstream budget. Fresh entries live
// under an expiring key; a second persistent key serves the stale
// fallback path.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string, db int, prefix string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if prefix == "" {
		prefix = "betboard"
	}

	return &RedisStore{client: client, prefix: prefix, ttl: ttl}, nil
}

func (s *RedisStore) liveKey(key string) string  { return s.prefix + ":live:" + key }
func (s *RedisStore) staleKey(key string) string { return s.prefix + ":stale:" + key }

// Get returns the TTL-fresh entry for key, if any.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool) {
	return s.fetch(ctx, s.liveKey(key))
}

// GetStale returns the last written entry for key regardless of age.
func (s *RedisStore) GetStale(ctx context.Context, key string) ([]byte, time.Time, bool) {
	return s.fetch(ctx, s.staleKey(key))
}

func (s *RedisStore) fetch(ctx context.Context, redisKey string) ([]byte, time.Time, bool) {
	raw, err := s.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		return nil, time.Time{}, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, time.Time{}, false
	}
	return env.Data, env.StoredAt, true
}

// Set writes the entry under both the expiring live key and the
// persistent stale key.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	env := envelope{Data: data, StoredAt: time.Now()}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal cache envelope: %w", err)
	}

	if err := s.client.Set(ctx, s.liveKey(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set live key: %w", err)
	}
	if err := s.client.Set(ctx, s.staleKey(key), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to set stale key: %w", err)
	}
	return nil
}

// Clear removes every key under this store's prefix.
func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := s.client.Keys(ctx, s.prefix+":*").Result()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

// Close closes the connection to Redis.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
