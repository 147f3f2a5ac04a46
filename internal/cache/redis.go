package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisClient NewRedisClient 內部需要的方法，便於測試替換
type redisClient interface {
	Cache
	Ping(ctx context.Context) *redis.StatusCmd
}

// redisNewClient 建立 redis client，測試可覆寫
var redisNewClient = func(opt *redis.Options) redisClient {
	return redis.NewClient(opt)
}

// NewRedisClient connects to addr and pings it. The client is closed again
// when the ping fails.
func NewRedisClient(ctx context.Context, addr, password string, db int) (Cache, error) {
	client := redisNewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("NewRedisClient: %w", err)
	}
	return client, nil
}
