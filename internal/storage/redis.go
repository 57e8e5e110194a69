package storage

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	redisclient "github.com/trailheadsupply/storefront/pkg/redis"
	"github.com/trailheadsupply/storefront/pkg/types"
)

// RedisStore keeps cart entries in Redis under namespaced keys.
type RedisStore struct {
	client *redisclient.Client
}

func NewRedisStore(client *redisclient.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetCart(ctx context.Context, key string) ([]types.CartItem, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(key))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return []types.CartItem{}, nil
		}
		return nil, err
	}
	return decodeCart([]byte(raw))
}

func (s *RedisStore) SetCart(ctx context.Context, key string, items []types.CartItem) error {
	raw, err := encodeCart(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.client.CartKey(key), string(raw), 0)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
