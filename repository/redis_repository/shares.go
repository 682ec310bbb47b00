package redis_repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/qbit/internal/apperr"
)

const shareKeyPrefix = "share:"

// shareStore implements repository.ShareStore on Redis. TTL handling
// is delegated to the server (SET with EX).
type shareStore struct {
	client *redis.Client
}

func NewShareStore(client *redis.Client) *shareStore {
	return &shareStore{client: client}
}

func (s *shareStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, shareKeyPrefix+key, value, ttl).Err(); err != nil {
		return apperr.NewStore(err)
	}
	return nil
}

func (s *shareStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, shareKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.ErrNotFound
		}
		return "", apperr.NewStore(err)
	}
	return val, nil
}
