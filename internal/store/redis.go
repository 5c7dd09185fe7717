package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type RedisKV struct {
	client redis.UniversalClient
}

func NewRedisKV(client redis.UniversalClient) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SetAll writes every entry inside MULTI/EXEC.
func (r *RedisKV) SetAll(ctx context.Context, entries map[string][]byte) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, k, v, 0)
		}
		return nil
	})
	return err
}
