package kvstore

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// RedisOption configures the Redis store.
type RedisOption func(*Redis)

// WithPrefix sets a key prefix. Keys are stored as "{prefix}:{key}".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithOwnedClient makes Close also close the underlying client.
// Open uses it for clients it created itself.
func WithOwnedClient() RedisOption {
	return func(r *Redis) {
		r.owned = true
	}
}

// Redis is a Store backed by Redis. Values never expire.
type Redis struct {
	client goredis.UniversalClient
	prefix string
	owned  bool
}

// NewRedis creates a Redis-backed store.
// The client should be obtained from pkg/redis.Open or pkg/redis.MustOpen.
func NewRedis(client goredis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get retrieves a value by key.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

// Set stores a value without expiration.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Delete removes a key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close closes the client if the store owns it; otherwise it is a no-op
// and the caller manages the client lifecycle.
func (r *Redis) Close() error {
	if r.owned {
		return r.client.Close()
	}
	return nil
}

func (r *Redis) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

var _ Store = (*Redis)(nil)
