package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Set is a typed, redis-backed, msgpack-encoded keyed cache shared across
// process instances.
type Set[T any] struct {
	// m serializes MutexGetSet to prevent a thundering herd on the
	// underlying valueFunc
	m sync.Mutex

	client *redis.Client
	prefix string
}

func NewSet[T any](client *redis.Client, prefix string) *Set[T] {
	return &Set[T]{
		client: client,
		prefix: prefix + ":",
	}
}

func (c *Set[T]) key(key string) string {
	return c.prefix + key
}

func (c *Set[T]) Get(key string, dest *T) error {
	key = c.key(key)
	resp, err := c.client.Get(context.Background(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		log.Error().Err(err).Str("key", key).Msg("failed to get value from redis")
		return err
	}
	if err := msgpack.Unmarshal(resp, dest); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal msgpack value from redis")
		return err
	}
	return nil
}

func (c *Set[T]) Set(key string, value T, expire time.Duration) error {
	key = c.key(key)
	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal value with msgpack")
		return err
	}
	if err := c.client.Set(context.Background(), key, b, expire).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set value to redis")
		return err
	}
	return nil
}

func (c *Set[T]) Delete(key string) error {
	return c.client.Del(context.Background(), c.key(key)).Err()
}

// Clear drops every key under this set's prefix.
func (c *Set[T]) Clear() error {
	ctx := context.Background()
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// MutexGetSet returns the cached value for key, or when absent, computes
// it via valueFunc exactly once among concurrent in-process callers,
// stores it, and returns it.
func (c *Set[T]) MutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) error {
	err := c.Get(key, dest)
	if err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	c.m.Lock()
	defer c.m.Unlock()
	err = c.Get(key, dest)
	if err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", c.key(key)).Msg("failed to get value from valueFunc() in MutexGetSet")
		return err
	}
	if err := c.Set(key, value, expire); err != nil {
		return err
	}
	*dest = value
	return nil
}
