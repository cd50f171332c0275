package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache: key not found")

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}

// RedisCacheRepository is the Redis-backed cache.
type RedisCacheRepository struct {
	client *redis.Client
}

func NewRedisCacheRepository(client *redis.Client) CacheRepositoryInterface {
	return &RedisCacheRepository{client: client}
}

func (r *RedisCacheRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (r *RedisCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCacheRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

func (r *RedisCacheRepository) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return r.client.Expire(ctx, key, expiration).Result()
}

// MemoryCacheRepository keeps entries in process memory. It backs the cache
// when no Redis address is configured and in tests.
type MemoryCacheRepository struct {
	store *gocache.Cache
}

func NewMemoryCacheRepository(cleanupInterval time.Duration) CacheRepositoryInterface {
	return &MemoryCacheRepository{store: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	val, found := m.store.Get(key)
	if !found {
		return "", ErrCacheMiss
	}
	switch v := val.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	}
	return "", errors.New("cache: unexpected value type")
}

func (m *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var stored interface{}
	switch v := value.(type) {
	case string:
		stored = v
	case int:
		stored = int64(v)
	case int64:
		stored = v
	default:
		return errors.New("cache: only string and integer values are supported")
	}
	m.store.Set(key, stored, ttl(expiration))
	return nil
}

func (m *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.store.Delete(k)
	}
	return nil
}

// Incr starts a missing key at 1 with no expiry, matching Redis INCR.
func (m *MemoryCacheRepository) Incr(_ context.Context, key string) (int64, error) {
	if err := m.store.Add(key, int64(1), gocache.NoExpiration); err == nil {
		return 1, nil
	}
	return m.store.IncrementInt64(key, 1)
}

func (m *MemoryCacheRepository) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	val, found := m.store.Get(key)
	if !found {
		return false, nil
	}
	m.store.Set(key, val, ttl(expiration))
	return true, nil
}

func ttl(expiration time.Duration) time.Duration {
	if expiration <= 0 {
		return gocache.NoExpiration
	}
	return expiration
}
