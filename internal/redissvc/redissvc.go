// Package redissvc provides a Redis-backed read-through cache for products.
package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	models "github.com/rogerio-castellano/product-catalog/internal/models"
)

// ProductCache caches products by ID. Every failure degrades to a cache miss;
// the repository stays the source of truth.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewProductCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl, log: log}
}

func productKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

// Get returns the cached product and true on a hit.
func (c *ProductCache) Get(ctx context.Context, id int) (models.Product, bool) {
	data, err := c.rdb.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("product cache read failed", zap.Int("product_id", id), zap.Error(err))
		}
		return models.Product{}, false
	}
	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		c.log.Warn("product cache entry corrupted", zap.Int("product_id", id), zap.Error(err))
		return models.Product{}, false
	}
	return p, true
}

// Set stores the product under its ID with the configured TTL.
func (c *ProductCache) Set(ctx context.Context, p models.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, productKey(p.ID), data, c.ttl).Err(); err != nil {
		c.log.Warn("product cache write failed", zap.Int("product_id", p.ID), zap.Error(err))
	}
}

// Invalidate drops the cached entry for a product after a mutation.
func (c *ProductCache) Invalidate(ctx context.Context, id int) {
	if err := c.rdb.Del(ctx, productKey(id)).Err(); err != nil {
		c.log.Warn("product cache invalidation failed", zap.Int("product_id", id), zap.Error(err))
	}
}
