// Package cache provides the Redis-backed cache for the product list view.
// Only the flat list is cached; aggregated product views are always built
// fresh from the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petdailykit/catalog/internal/domain"
)

const listKey = "catalog:products:list"

// ErrMiss is returned when the list is not cached.
var ErrMiss = errors.New("cache miss")

// ProductListCache caches the serialized product list with a TTL. Any write
// to the catalog invalidates it.
type ProductListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewProductListCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ProductListCache {
	return &ProductListCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached product list, or ErrMiss when absent.
func (c *ProductListCache) Get(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("get product list from cache: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode cached product list: %w", err)
	}
	return products, nil
}

// Set stores the product list under the configured TTL.
func (c *ProductListCache) Set(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode product list for cache: %w", err)
	}

	if err := c.client.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set product list in cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached list. Called after every catalog write.
func (c *ProductListCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate product list cache", slog.String("error", err.Error()))
	}
}
