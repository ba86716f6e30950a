package cache

import (
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get when a key is absent from the cache.
var ErrNotFound = errors.New("cache: no such key")
