package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trailheadsupply/storefront/pkg/config"
	pkgerrors "github.com/trailheadsupply/storefront/pkg/errors"
	"github.com/trailheadsupply/storefront/pkg/logger"
	redisclient "github.com/trailheadsupply/storefront/pkg/redis"
	"github.com/trailheadsupply/storefront/pkg/types"
)

// Store is the local persistence port the checkout flow reads carts from
// and clears them in. A missing key is an empty cart, never an error.
type Store interface {
	GetCart(ctx context.Context, key string) ([]types.CartItem, error)
	SetCart(ctx context.Context, key string, items []types.CartItem) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the configured backend.
func Open(ctx context.Context, cfg config.StorageConfig, redisCfg config.RedisConfig, logg *logger.Logger) (Store, error) {
	switch cfg.Backend {
	case config.StorageBackendMemory:
		return NewMemoryStore(), nil
	case config.StorageBackendFile:
		return NewFileStore(cfg.FilePath)
	case config.StorageBackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case config.StorageBackendRedis:
		client, err := redisclient.New(ctx, redisCfg, logg)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// decodeCart turns a stored JSON document into normalized cart items.
// Defaulting happens here, once, so every consumer sees clean records.
func decodeCart(raw []byte) ([]types.CartItem, error) {
	if len(raw) == 0 {
		return []types.CartItem{}, nil
	}
	var items []types.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode stored cart")
	}
	return types.NormalizeItems(items), nil
}

func encodeCart(items []types.CartItem) ([]byte, error) {
	if items == nil {
		items = []types.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	return raw, nil
}
