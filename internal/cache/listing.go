package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/strnadel/strnadel-api/internal/repository"
	"github.com/strnadel/strnadel-api/pkg/metrics"
)

// ListingCache keeps serialized listing responses in Redis under
// "<prefix><collection>:<limit>" for a fixed TTL. The listing collections are
// populated out-of-band, so entries are never invalidated explicitly.
// A nil *ListingCache is valid and caches nothing.
type ListingCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewListingCache returns a cache backed by client. Prefix may be empty.
func NewListingCache(client *redis.Client, prefix string, ttl time.Duration) *ListingCache {
	if client == nil {
		return nil
	}
	if prefix == "" {
		prefix = "listing:"
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ListingCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *ListingCache) key(collection string, limit int64) string {
	return fmt.Sprintf("%s%s:%d", c.prefix, collection, limit)
}

// Get returns the cached listing and true on a hit. Redis errors count as a
// miss.
func (c *ListingCache) Get(ctx context.Context, collection string, limit int64) ([]repository.Document, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.client.Get(ctx, c.key(collection, limit)).Bytes()
	if err != nil {
		metrics.CacheRequests.WithLabelValues(collection, "miss").Inc()
		return nil, false
	}
	var docs []repository.Document
	if err := json.Unmarshal(b, &docs); err != nil {
		_ = c.client.Del(ctx, c.key(collection, limit)).Err()
		metrics.CacheRequests.WithLabelValues(collection, "miss").Inc()
		return nil, false
	}
	metrics.CacheRequests.WithLabelValues(collection, "hit").Inc()
	return docs, true
}

// Set stores docs for collection/limit.
func (c *ListingCache) Set(ctx context.Context, collection string, limit int64, docs []repository.Document) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(collection, limit), b, c.ttl).Err()
}
