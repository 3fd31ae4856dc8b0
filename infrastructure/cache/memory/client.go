// ABOUTME: In-memory cache over sync.Map, the default backend for single-instance runs
// ABOUTME: Values are copied in and out so callers can mutate what they pass or receive

package memory

import (
	"context"
	"errors"
	"sync"
	"time"
)

// entry is one cached value with its expiration.
type entry struct {
	value      []byte
	expiration time.Time
	noExpire   bool
}

// MemoryCache implements the Cache interface with in-process storage.
type MemoryCache struct {
	entries sync.Map
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Get returns a copy of the value stored at key, or an error on a miss.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	value, ok := c.entries.Load(key)
	if !ok {
		return nil, errors.New("key not found")
	}

	e := value.(*entry)

	if !e.noExpire && time.Now().After(e.expiration) {
		c.entries.Delete(key)
		// One expired hit usually means others lapsed too.
		go c.cleanup()
		return nil, errors.New("key not found")
	}

	result := make([]byte, len(e.value))
	copy(result, e.value)
	return result, nil
}

// Set stores a copy of value at key. A zero TTL keeps the entry until
// it is deleted.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	newEntry := &entry{
		value:    valueCopy,
		noExpire: ttl == 0,
	}
	if ttl > 0 {
		newEntry.expiration = time.Now().Add(ttl)
	}

	c.entries.Store(key, newEntry)

	return nil
}

// Delete removes the entry at key. Deleting an absent key is not an
// error.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	c.entries.Delete(key)
	return nil
}

// cleanup removes every expired entry.
func (c *MemoryCache) cleanup() {
	now := time.Now()
	c.entries.Range(func(key, value interface{}) bool {
		e := value.(*entry)
		if !e.noExpire && now.After(e.expiration) {
			c.entries.Delete(key)
		}
		return true
	})
}
