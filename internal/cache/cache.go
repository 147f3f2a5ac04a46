// Package cache keeps the last good user list in Redis so the panel has
// something to show when the API cannot be reached.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 快取操作介面，*redis.Client 直接實作
// ttl <= 0 表示不設過期
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// FakeCache 測試用，未設定的方法會 panic
type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	DelFn   func(ctx context.Context, keys ...string) *redis.IntCmd
	CloseFn func() error
}

func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, ttl)
	}
	panic("unexpected Set")
}

func (f *FakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.DelFn != nil {
		return f.DelFn(ctx, keys...)
	}
	panic("unexpected Del")
}

// Close 未設定時為 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

// MemoryCache is a FakeCache backed by a map, for tests that need real
// round trips without a Redis server.
func MemoryCache() *FakeCache {
	data := map[string]string{}
	return &FakeCache{
		GetFn: func(ctx context.Context, key string) *redis.StringCmd {
			v, ok := data[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(v, nil)
		},
		SetFn: func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
			switch v := value.(type) {
			case []byte:
				data[key] = string(v)
			case string:
				data[key] = v
			default:
				return redis.NewStatusResult("", errUnsupportedValue)
			}
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(ctx context.Context, keys ...string) *redis.IntCmd {
			var n int64
			for _, k := range keys {
				if _, ok := data[k]; ok {
					delete(data, k)
					n++
				}
			}
			return redis.NewIntResult(n, nil)
		},
	}
}
