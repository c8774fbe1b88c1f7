// internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"time"

	"lease-advisor/internal/common/logger"
	"lease-advisor/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	dealsCacheKey         = "deals:active"
	dealsCategoryCacheKey = "deals:category:"
)

// CachedDealStore is a read-through cache over DealStore. Cache misses and
// Redis outages both fall back to the database, so a cold or unreachable
// cache only costs latency.
type CachedDealStore struct {
	store  *DealStore
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedDealStore(store *DealStore, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedDealStore {
	return &CachedDealStore{store: store, client: client, ttl: ttl, logger: log}
}

func (c *CachedDealStore) List(ctx context.Context) ([]models.Deal, error) {
	if deals, ok := c.get(ctx, dealsCacheKey); ok {
		return deals, nil
	}

	deals, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, dealsCacheKey, deals)
	return deals, nil
}

func (c *CachedDealStore) ListByCategory(ctx context.Context, category string) ([]models.Deal, error) {
	key := dealsCategoryCacheKey + category
	if deals, ok := c.get(ctx, key); ok {
		return deals, nil
	}

	deals, err := c.store.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, deals)
	return deals, nil
}

func (c *CachedDealStore) get(ctx context.Context, key string) ([]models.Deal, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var deals []models.Deal
	if err := json.Unmarshal([]byte(val), &deals); err != nil {
		c.logger.Warn("corrupt cache entry, reloading from database", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}
	return deals, true
}

func (c *CachedDealStore) set(ctx context.Context, key string, deals []models.Deal) {
	data, err := json.Marshal(deals)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
