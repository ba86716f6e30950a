package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// Singular is a typed in-process cache holding a single value under a
// fixed key. Used for process-wide read-mostly data such as the boss list
// or the parsed XP requirement table.
type Singular[T any] struct {
	// m serializes MutexGetSet to prevent a thundering herd on the
	// underlying valueFunc
	m sync.Mutex

	key string

	c *gocache.Cache
}

func NewSingular[T any](key string) *Singular[T] {
	return &Singular[T]{
		key: key,
		c:   gocache.New(gocache.NoExpiration, time.Minute*10),
	}
}

func (c *Singular[T]) Get(dest *T) error {
	result, ok := c.c.Get(c.key)
	if !ok {
		return ErrNotFound
	}
	value, ok := result.(T)
	if !ok {
		return ErrNotFound
	}
	*dest = value
	return nil
}

func (c *Singular[T]) Set(value T, expire time.Duration) error {
	c.c.Set(c.key, value, expire)
	return nil
}

// MutexGetSet returns the cached value, or when absent, computes it via
// valueFunc exactly once among concurrent callers, stores it, and returns
// it.
func (c *Singular[T]) MutexGetSet(dest *T, valueFunc func() (T, error), expire time.Duration) error {
	if err := c.Get(dest); err == nil {
		return nil
	}

	c.m.Lock()
	defer c.m.Unlock()
	if err := c.Get(dest); err == nil {
		return nil
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to get value from valueFunc() in MutexGetSet")
		return err
	}
	if err := c.Set(value, expire); err != nil {
		return err
	}
	*dest = value
	return nil
}

func (c *Singular[T]) Delete() error {
	c.c.Flush()
	return nil
}
