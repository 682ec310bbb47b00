package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/qbit/config"
	"github.com/mohammad-safakhou/qbit/repository/inmemory"
	"github.com/mohammad-safakhou/qbit/repository/redis_repository"
)

// ShareStore is an expiring key-value store for share records. Get
// returns apperr.ErrNotFound for a key that is absent or expired; the
// two are indistinguishable by contract. Put overwrites silently.
type ShareStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

type StoreType string

const (
	StoreTypeRedis    StoreType = "redis"
	StoreTypeInMemory StoreType = "inmemory"
)

// NewShareStore builds the configured store. For the redis type the
// dialed client is returned alongside so callers can reuse the pool;
// it is nil for the in-memory store.
func NewShareStore(ctx context.Context, cfg config.StorageConfig) (ShareStore, *redis.Client, error) {
	switch StoreType(cfg.Type) {
	case StoreTypeRedis:
		c, err := redis_repository.Conn(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return redis_repository.NewShareStore(c), c, nil
	case StoreTypeInMemory:
		return inmemory.NewShareStore(), nil, nil
	}
	return nil, nil, fmt.Errorf("invalid store type: %s", cfg.Type)
}
