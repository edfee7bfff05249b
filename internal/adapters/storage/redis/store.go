// Package redis persists the gateway's single key/value slot (tokens,
// cached user, theme) in a redis instance.
package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"registros-gateway/internal/core/ports"
)

type Store struct {
	client *goredis.Client
	prefix string
}

// New wraps an already-connected client. The prefix namespaces the keys so
// several gateway instances can share one redis.
func New(client *goredis.Client, prefix string) ports.KeyValue {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Available() bool {
	return s.client != nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.prefix + key
	}
	return s.client.Del(ctx, prefixed...).Err()
}
