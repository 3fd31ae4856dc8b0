// ABOUTME: Redis JSON document cache for generated result sets
// ABOUTME: Stores whole result documents under result:<category> with a TTL

package rejson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nitishm/go-rejson/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
)

// keyPrefix namespaces result documents away from the byte cache keys
// that may share the same Redis server.
const keyPrefix = "result"

// ErrNotCached reports a category with no cached document.
var ErrNotCached = errors.New("document not cached")

// DocumentCache stores result documents as native Redis JSON values.
// It needs the RedisJSON module loaded on the server.
type DocumentCache struct {
	client  *goredis.Client
	handler *rejson.Handler
}

// NewDocumentCache wraps an existing Redis connection, so deployments
// share one server between the byte cache and the document cache.
func NewDocumentCache(client *goredis.Client) *DocumentCache {
	handler := rejson.NewReJSONHandler()
	handler.SetGoRedisClient(client)

	return &DocumentCache{client: client, handler: handler}
}

// SetDocument stores a result document with the given TTL. A zero TTL
// keeps the document until it is replaced or deleted.
func (c *DocumentCache) SetDocument(ctx context.Context, category string, doc *domain.ResultDocument, ttl time.Duration) error {
	if category == "" {
		return errors.New("category cannot be empty")
	}
	if doc == nil {
		return errors.New("document cannot be nil")
	}

	key := documentKey(category)
	if _, err := c.handler.JSONSet(key, ".", doc); err != nil {
		return fmt.Errorf("storing document for %s: %w", category, err)
	}

	if ttl != 0 {
		if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
			return fmt.Errorf("setting TTL for %s: %w", category, err)
		}
	}

	return nil
}

// GetDocument retrieves a cached result document, or ErrNotCached when
// the category has none.
func (c *DocumentCache) GetDocument(ctx context.Context, category string) (*domain.ResultDocument, error) {
	val, err := c.handler.JSONGet(documentKey(category), ".")
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("reading document for %s: %w", category, err)
	}

	raw, ok := val.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected reply type %T for %s", val, category)
	}

	var doc domain.ResultDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding document for %s: %w", category, err)
	}

	return &doc, nil
}

// DeleteDocument removes a cached result document. Deleting an absent
// document is not an error.
func (c *DocumentCache) DeleteDocument(ctx context.Context, category string) error {
	if _, err := c.handler.JSONDel(documentKey(category), "."); err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil
		}
		return fmt.Errorf("deleting document for %s: %w", category, err)
	}

	return nil
}

// documentKey builds the Redis key for a category's document.
func documentKey(category string) string {
	return keyPrefix + ":" + category
}
