package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV is a KV backed by Redis. Keys are namespaced with a prefix so
// several installs can share one server.
type RedisKV struct {
	rdb    *redis.Client
	prefix string
}

var _ KV = (*RedisKV)(nil)

// OpenRedis connects to the Redis server at addr, which may be a
// redis:// URL or a host:port pair.
func OpenRedis(ctx context.Context, addr, prefix string) (*RedisKV, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return &RedisKV{rdb: rdb, prefix: prefix}, nil
}

func (r *RedisKV) key(name string) string {
	return r.prefix + name
}

// Get returns the values stored for keys. Missing keys are absent from the
// result.
func (r *RedisKV) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	vals, err := r.rdb.MGet(ctx, full...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget: %w", err)
	}
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[keys[i]] = s
		}
	}
	return out, nil
}

// SetMany writes every value inside MULTI/EXEC.
func (r *RedisKV) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for k, v := range values {
			p.Set(ctx, r.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set progress: %w", err)
	}
	return nil
}

// Delete removes keys. Missing keys are ignored.
func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

// Close closes the client.
func (r *RedisKV) Close() error {
	return r.rdb.Close()
}
