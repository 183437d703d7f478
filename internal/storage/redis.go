package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// Redis stores snapshots as plain string values with an idle TTL.
// A TTL of zero keeps keys forever.
type Redis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{Client: client, TTL: ttl}
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "storage: redis get")
	}
	return v, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := s.Client.Set(ctx, key, value, s.TTL).Err(); err != nil {
		return errors.Wrap(err, "storage: redis set")
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "storage: redis del")
	}
	return nil
}
