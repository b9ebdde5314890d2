package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces slot keys inside a shared Redis database.
const DefaultRedisPrefix = "tasklist:slot:"

// RedisBackend implements StorageBackend using Redis string keys.
//
// Unlike the SQL backends it holds one client for its lifetime; callers
// release it with Close.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// RedisOption configures a RedisBackend.
type RedisOption func(*RedisBackend)

// WithKeyPrefix overrides DefaultRedisPrefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(b *RedisBackend) {
		b.prefix = prefix
	}
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(client *redis.Client, opts ...RedisOption) *RedisBackend {
	b := &RedisBackend{
		client: client,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// DialRedisBackend parses url, connects, and verifies the server answers PING.
func DialRedisBackend(url string, opts ...RedisOption) (*RedisBackend, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisBackend(client, opts...), nil
}

// ReadSlot loads the value stored under key.
//
// Returns ErrSlotEmpty if the Redis key does not exist.
func (b *RedisBackend) ReadSlot(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	value, err := b.client.Get(context.Background(), b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}

	return value, nil
}

// WriteSlot replaces the value stored under key. SET is atomic, and the key
// never expires.
func (b *RedisBackend) WriteSlot(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := b.client.Set(context.Background(), b.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}

	return nil
}

// Close closes the Redis connection.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
