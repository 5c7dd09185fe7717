package store

import (
	"context"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/joao-fontenele/msme-business-hub/internal/config"
	"github.com/joao-fontenele/msme-business-hub/internal/telemetry"
)

// OpenKV connects to the medium selected by cfg.Backend. The returned close
// function releases the connection.
func OpenKV(ctx context.Context, cfg config.StoreConfig) (KV, func() error, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryKV(), func() error { return nil }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return NewRedisKV(client), client.Close, nil

	case "postgres":
		db, err := telemetry.OpenPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresKV(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
