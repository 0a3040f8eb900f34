package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Options selects the Redis server; zero PoolSize keeps the go-redis default.
type Options struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// OpenRedis connects and pings. The client backs the idempotency store and the mail outbox.
func OpenRedis(ctx context.Context, o Options) (*redis.Client, error) {
	if o.Addr == "" {
		return nil, fmt.Errorf("redis: empty address")
	}
	r := redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
		PoolSize: o.PoolSize,
	})
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis ping %s: %w", o.Addr, err)
	}
	return r, nil
}
