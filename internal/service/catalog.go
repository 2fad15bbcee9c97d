// Package service contains the catalog business logic: product CRUD on top
// of the repositories, list caching, event publishing, and the variant
// aggregation that assembles the nested product view.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/petdailykit/catalog/internal/cache"
	"github.com/petdailykit/catalog/internal/domain"
	"github.com/petdailykit/catalog/internal/repository"
)

// ListCache caches the flat product list. Aggregated views are never cached.
type ListCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context)
}

// EventPublisher emits product lifecycle events. Implementations must not
// fail the calling request; publishing is best effort.
type EventPublisher interface {
	ProductCreated(ctx context.Context, product *domain.Product)
	ProductUpdated(ctx context.Context, product *domain.Product)
	ProductDeleted(ctx context.Context, id int64)
}

// CatalogService implements the catalog use cases.
type CatalogService struct {
	products repository.ProductRepository
	variants repository.VariantRepository
	cache    ListCache
	events   EventPublisher
	logger   *slog.Logger
}

func NewCatalogService(
	products repository.ProductRepository,
	variants repository.VariantRepository,
	listCache ListCache,
	events EventPublisher,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products: products,
		variants: variants,
		cache:    listCache,
		events:   events,
		logger:   logger,
	}
}

// List returns all products, newest first. The list is served from cache
// when possible; a cache failure falls through to the store.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	cached, err := s.cache.Get(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.WarnContext(ctx, "product list cache read failed", slog.String("error", err.Error()))
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, products); err != nil {
		s.logger.WarnContext(ctx, "product list cache write failed", slog.String("error", err.Error()))
	}

	return products, nil
}

// Get returns a single product header by id.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create inserts a new product, invalidates the list cache, and publishes a
// created event.
func (s *CatalogService) Create(ctx context.Context, p *domain.Product) error {
	if err := s.products.Create(ctx, p); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	s.events.ProductCreated(ctx, p)

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", p.ID),
		slog.String("sku", p.SKU))
	return nil
}

// Update modifies an existing product, invalidates the list cache, and
// publishes an updated event.
func (s *CatalogService) Update(ctx context.Context, p *domain.Product) error {
	if err := s.products.Update(ctx, p); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	s.events.ProductUpdated(ctx, p)

	s.logger.InfoContext(ctx, "product updated", slog.Int64("product_id", p.ID))
	return nil
}

// Delete removes a product. Sizes, colors, and variations go with it via
// the schema's cascade rules.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	s.events.ProductDeleted(ctx, id)

	s.logger.InfoContext(ctx, "product deleted", slog.Int64("product_id", id))
	return nil
}

// GetAggregateByTitle assembles the full product view for an exact title.
func (s *CatalogService) GetAggregateByTitle(ctx context.Context, title string) (*domain.ProductAggregate, error) {
	p, err := s.products.GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return s.aggregate(ctx, p)
}

// GetAggregateByID assembles the full product view for a product id.
func (s *CatalogService) GetAggregateByID(ctx context.Context, id int64) (*domain.ProductAggregate, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.aggregate(ctx, p)
}
