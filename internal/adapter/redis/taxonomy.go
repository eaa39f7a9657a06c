// Package redis caches read-mostly data in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// TaxonomyKey is the cache key of the serialized taxonomy.
const TaxonomyKey = "tagmatch:taxonomy"

type taxonomySource interface {
	Taxonomy(ctx context.Context) (domain.Taxonomy, error)
}

// TaxonomyCache serves the taxonomy from Redis and falls back to the source
// on a miss. Redis failures are logged and never fail the read.
type TaxonomyCache struct {
	client *goredis.Client
	source taxonomySource
	ttl    time.Duration
	log    *slog.Logger
}

// NewTaxonomyCache creates a cache in front of source.
func NewTaxonomyCache(client *goredis.Client, source taxonomySource, ttl time.Duration, log *slog.Logger) *TaxonomyCache {
	return &TaxonomyCache{
		client: client,
		source: source,
		ttl:    ttl,
		log:    log.With("adapter", "redis.taxonomy"),
	}
}

// Taxonomy returns the cached taxonomy, loading and storing it on a miss.
func (c *TaxonomyCache) Taxonomy(ctx context.Context) (domain.Taxonomy, error) {
	raw, err := c.client.Get(ctx, TaxonomyKey).Bytes()
	switch {
	case err == nil:
		var tax domain.Taxonomy
		if err := json.Unmarshal(raw, &tax); err == nil {
			return tax, nil
		}
		c.log.WarnContext(ctx, "discarding undecodable cached taxonomy")
	case errors.Is(err, goredis.Nil):
	default:
		c.log.WarnContext(ctx, "taxonomy cache read failed", slog.String("error", err.Error()))
	}

	tax, err := c.source.Taxonomy(ctx)
	if err != nil {
		return domain.Taxonomy{}, err
	}

	payload, err := json.Marshal(tax)
	if err != nil {
		return tax, nil
	}
	if err := c.client.Set(ctx, TaxonomyKey, payload, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "taxonomy cache write failed", slog.String("error", err.Error()))
	}
	return tax, nil
}

// Invalidate drops the cached taxonomy. Called after the tags table changes.
func (c *TaxonomyCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, TaxonomyKey).Err(); err != nil {
		return fmt.Errorf("invalidate taxonomy cache: %w", err)
	}
	return nil
}

// NewClient creates a client and verifies connectivity.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Ping reports whether Redis is reachable.
func (c *TaxonomyCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
