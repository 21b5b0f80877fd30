// Package cache provides an explicit cache-aside helper over a
// generic key-value store. Business logic stays unaware of caching:
// handlers wrap their read calls in Aside with a key builder and a
// TTL, and a nil or failing store degrades to calling through.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the key-value surface the wrapper needs. The redis-backed
// implementation lives in this package; tests use an in-memory map.
type Store interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores the value under key for ttl.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Aside performs a cache-aside read: on a hit the cached JSON is
// decoded and returned; on a miss fetch runs and its result is
// stored. Cache failures are logged and never fail the read.
func Aside[T any](ctx context.Context, store Store, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if store != nil {
		raw, ok, err := store.Get(ctx, key)
		if err != nil {
			log.Printf("cache: get %q: %v", key, err)
		} else if ok {
			var out T
			if err := json.Unmarshal([]byte(raw), &out); err == nil {
				return out, nil
			}
			log.Printf("cache: decode %q failed, refetching", key)
		}
	}
	out, err := fetch(ctx)
	if err != nil {
		return zero, err
	}
	if store != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := store.Set(ctx, key, string(raw), ttl); err != nil {
				log.Printf("cache: set %q: %v", key, err)
			}
		}
	}
	return out, nil
}

// RedisStore implements Store on a Redis client.
type RedisStore struct{ Client *redis.Client }

func NewRedisStore(client *redis.Client) *RedisStore { return &RedisStore{Client: client} }

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.Client.Set(ctx, key, value, ttl).Err()
}
