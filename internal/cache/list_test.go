package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petdailykit/catalog/internal/domain"
	"github.com/petdailykit/catalog/pkg/logger"
)

func setupTestCache(t *testing.T) (*ProductListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewProductListCache(client, time.Minute, logger.New("catalog-test", "error")), mr
}

func sampleList() []domain.Product {
	return []domain.Product{
		{ID: 2, Title: "Rope Toy", CategoryID: 1, SubcategoryID: 4, SKU: "RT-002"},
		{ID: 1, Title: "Trail Harness", CategoryID: 3, SubcategoryID: 7, SKU: "TH-001"},
	}
}

func TestProductListCache_GetMiss(t *testing.T) {
	c, _ := setupTestCache(t)

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrMiss)
}

func TestProductListCache_SetGet(t *testing.T) {
	c, mr := setupTestCache(t)
	products := sampleList()

	require.NoError(t, c.Set(context.Background(), products))

	got, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)

	ttl := mr.TTL(listKey)
	assert.Equal(t, time.Minute, ttl)
}

func TestProductListCache_GetCorruptPayload(t *testing.T) {
	c, mr := setupTestCache(t)

	require.NoError(t, mr.Set(listKey, "not json"))

	_, err := c.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestProductListCache_Invalidate(t *testing.T) {
	c, mr := setupTestCache(t)

	data, err := json.Marshal(sampleList())
	require.NoError(t, err)
	require.NoError(t, mr.Set(listKey, string(data)))

	c.Invalidate(context.Background())

	assert.False(t, mr.Exists(listKey))
}
