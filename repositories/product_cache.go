package repositories

import (
	"context"
	"encoding/json"
	"estoque-console/metrics"
	"estoque-console/models"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productCachePrefix = "estoque:produtos:"

// ProductCache keeps product list snapshots in Redis, one key per filter.
// A cache built on a nil client is a no-op and every lookup misses.
type ProductCache struct {
	client  *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Registry
}

func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger, reg *metrics.Registry) *ProductCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductCache{client: client, ttl: ttl, logger: logger, metrics: reg}
}

func getProductCacheKey(filter models.CatalogFilter) string {
	if filter == models.FilterNone {
		return productCachePrefix + "todos"
	}
	return productCachePrefix + string(filter)
}

func (c *ProductCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *ProductCache) Get(ctx context.Context, filter models.CatalogFilter) ([]models.Product, bool) {
	if !c.Enabled() {
		return nil, false
	}

	cached, err := c.client.Get(ctx, getProductCacheKey(filter)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("product cache read failed", zap.Error(err))
		}
		c.metrics.CacheLookup(false)
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(cached, &products); err != nil {
		c.logger.Warn("discarding unreadable product cache entry", zap.Error(err))
		c.client.Del(ctx, getProductCacheKey(filter))
		c.metrics.CacheLookup(false)
		return nil, false
	}
	c.metrics.CacheLookup(true)
	return products, true
}

func (c *ProductCache) Set(ctx context.Context, filter models.CatalogFilter, products []models.Product) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, getProductCacheKey(filter), data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached list; any stock change affects all filters.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, productCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("product cache invalidation failed", zap.Error(err))
	}
}
