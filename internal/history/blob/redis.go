package blob

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis stores the blob under a single Redis key, for history shared
// between machines.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis creates a Redis-backed blob store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
		key:    "linksnap:history",
	}
}

func (r *Redis) Get(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return data, nil
}

func (r *Redis) Set(ctx context.Context, data []byte) error {
	return r.client.Set(ctx, r.key, data, 0).Err()
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
