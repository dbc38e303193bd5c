package kvstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrymomot/hireflow/pkg/redis"
)

// Store is a string key-value store.
type Store interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Open creates a Store from a URL.
//
// Supported schemes:
//
//	memory://                 in-process map
//	file:///path/state.json   JSON file (empty path uses DefaultFilePath)
//	redis://host:6379/0       Redis, keys prefixed with "hireflow"
func Open(ctx context.Context, rawURL string) (Store, error) {
	if rawURL == "" || rawURL == "memory://" {
		return NewMemory(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Join(ErrUnsupportedURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "memory":
		return NewMemory(), nil
	case "file":
		path := u.Path
		if path == "" {
			path = DefaultFilePath()
		}
		return NewFile(path)
	case "redis", "rediss":
		client, err := redis.Open(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return NewRedis(client, WithPrefix("hireflow"), WithOwnedClient()), nil
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, u.Scheme)
	}
}
