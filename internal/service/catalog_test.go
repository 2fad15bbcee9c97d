package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/petdailykit/catalog/internal/cache"
	"github.com/petdailykit/catalog/internal/domain"
	apperrors "github.com/petdailykit/catalog/pkg/errors"
)

// --- Mock Repositories ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetByTitle(ctx context.Context, title string) (*domain.Product, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockVariantRepository struct {
	mock.Mock
}

func (m *mockVariantRepository) SizesByProduct(ctx context.Context, productID int64) ([]domain.Size, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Size), args.Error(1)
}

func (m *mockVariantRepository) ColorsByProductAndSize(ctx context.Context, productID, sizeID int64) ([]domain.Color, error) {
	args := m.Called(ctx, productID, sizeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Color), args.Error(1)
}

func (m *mockVariantRepository) VariationsByProduct(ctx context.Context, productID int64) ([]domain.Variation, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Variation), args.Error(1)
}

func (m *mockVariantRepository) PriceRangeByProduct(ctx context.Context, productID int64) (domain.PriceRange, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.PriceRange), args.Error(1)
}

// --- Stub Cache and Events ---

type stubListCache struct {
	mu            sync.Mutex
	products      []domain.Product
	hit           bool
	getErr        error
	setErr        error
	setCalls      int
	invalidations int
}

func (c *stubListCache) Get(ctx context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	if !c.hit {
		return nil, cache.ErrMiss
	}
	return c.products, nil
}

func (c *stubListCache) Set(ctx context.Context, products []domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.products = products
	c.hit = true
	return nil
}

func (c *stubListCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	c.hit = false
}

type recordingEvents struct {
	mu      sync.Mutex
	created []int64
	updated []int64
	deleted []int64
}

func (e *recordingEvents) ProductCreated(ctx context.Context, p *domain.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.created = append(e.created, p.ID)
}

func (e *recordingEvents) ProductUpdated(ctx context.Context, p *domain.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.updated = append(e.updated, p.ID)
}

func (e *recordingEvents) ProductDeleted(ctx context.Context, id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deleted = append(e.deleted, id)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(products *mockProductRepository, variants *mockVariantRepository) (*CatalogService, *stubListCache, *recordingEvents) {
	listCache := &stubListCache{}
	events := &recordingEvents{}
	svc := NewCatalogService(products, variants, listCache, events, newTestLogger())
	return svc, listCache, events
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:               42,
		Title:            "Trail Harness",
		CategoryID:       3,
		SubcategoryID:    7,
		SKU:              "TH-001",
		ShortDescription: "Padded harness",
		LongDescription:  "Padded harness for daily walks",
	}
}

// --- Tests ---

func TestCatalogService_List_CacheHit(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, listCache, _ := newTestService(products, variants)

	listCache.hit = true
	listCache.products = []domain.Product{*sampleProduct()}

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, listCache.products, got)
	products.AssertNotCalled(t, "List", mock.Anything)
}

func TestCatalogService_List_CacheMiss(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, listCache, _ := newTestService(products, variants)

	want := []domain.Product{*sampleProduct()}
	products.On("List", mock.Anything).Return(want, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, listCache.setCalls)
	products.AssertExpectations(t)
}

func TestCatalogService_List_CacheFailureFallsThrough(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, listCache, _ := newTestService(products, variants)

	listCache.getErr = errors.New("redis: connection refused")
	want := []domain.Product{*sampleProduct()}
	products.On("List", mock.Anything).Return(want, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	products.AssertExpectations(t)
}

func TestCatalogService_List_StoreError(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, _, _ := newTestService(products, variants)

	products.On("List", mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := svc.List(context.Background())
	require.Error(t, err)
	products.AssertExpectations(t)
}

func TestCatalogService_Create(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, listCache, events := newTestService(products, variants)

	p := sampleProduct()
	p.ID = 0
	products.On("Create", mock.Anything, p).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Product).ID = 42
	}).Return(nil)

	err := svc.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, 1, listCache.invalidations)
	assert.Equal(t, []int64{42}, events.created)
	products.AssertExpectations(t)
}

func TestCatalogService_Create_RepoError(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, listCache, events := newTestService(products, variants)

	p := sampleProduct()
	products.On("Create", mock.Anything, p).Return(apperrors.AlreadyExists("product", "sku", p.SKU))

	err := svc.Create(context.Background(), p)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.Zero(t, listCache.invalidations)
	assert.Empty(t, events.created)
}

func TestCatalogService_Update(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, listCache, events := newTestService(products, variants)

	p := sampleProduct()
	products.On("Update", mock.Anything, p).Return(nil)

	err := svc.Update(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 1, listCache.invalidations)
	assert.Equal(t, []int64{42}, events.updated)
	products.AssertExpectations(t)
}

func TestCatalogService_Update_NotFound(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, listCache, events := newTestService(products, variants)

	p := sampleProduct()
	products.On("Update", mock.Anything, p).Return(apperrors.NotFound("Product"))

	err := svc.Update(context.Background(), p)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, listCache.invalidations)
	assert.Empty(t, events.updated)
}

func TestCatalogService_Delete(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, listCache, events := newTestService(products, variants)

	products.On("Delete", mock.Anything, int64(42)).Return(nil)

	err := svc.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 1, listCache.invalidations)
	assert.Equal(t, []int64{42}, events.deleted)
	products.AssertExpectations(t)
}

func TestCatalogService_Delete_NotFound(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, listCache, events := newTestService(products, variants)

	products.On("Delete", mock.Anything, int64(999)).Return(apperrors.NotFound("Product"))

	err := svc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, listCache.invalidations)
	assert.Empty(t, events.deleted)
}

func TestCatalogService_Get(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, _, _ := newTestService(products, variants)

	want := sampleProduct()
	products.On("GetByID", mock.Anything, int64(42)).Return(want, nil)

	got, err := svc.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCatalogService_GetAggregateByTitle_ProductNotFound(t *testing.T) {
	products := new(mockProductRepository)
	variants := new(mockVariantRepository)
	svc, _, _ := newTestService(products, variants)

	products.On("GetByTitle", mock.Anything, "Missing").Return(nil, apperrors.NotFound("Product"))

	_, err := svc.GetAggregateByTitle(context.Background(), "Missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	variants.AssertNotCalled(t, "SizesByProduct", mock.Anything, mock.Anything)
}
