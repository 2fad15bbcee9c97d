package repository

import (
	"context"

	"github.com/petdailykit/catalog/internal/domain"
)

// ProductRepository defines product header persistence operations.
type ProductRepository interface {
	// Create inserts a new product and assigns its identifier.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its identifier.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// GetByTitle retrieves a product by its exact title.
	GetByTitle(ctx context.Context, title string) (*domain.Product, error)

	// List returns all products, newest first.
	List(ctx context.Context) ([]domain.Product, error)

	// Update modifies an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id int64) error
}

// VariantRepository defines the read operations feeding the aggregation:
// sizes, colors, variations, and the price range of a product. All
// operations are read-only and uncached.
type VariantRepository interface {
	// SizesByProduct returns the sizes of a product in retrieval order.
	SizesByProduct(ctx context.Context, productID int64) ([]domain.Size, error)

	// ColorsByProductAndSize returns the colors available at one size of a
	// product. Colors are scoped per size because a color's image can
	// differ by size context.
	ColorsByProductAndSize(ctx context.Context, productID, sizeID int64) ([]domain.Color, error)

	// VariationsByProduct returns all variation rows of a product in one
	// call; correlation against sizes and colors happens in the service.
	VariationsByProduct(ctx context.Context, productID int64) ([]domain.Variation, error)

	// PriceRangeByProduct returns the min/max variation price of a product,
	// with nil bounds when the product has no variations.
	PriceRangeByProduct(ctx context.Context, productID int64) (domain.PriceRange, error)
}
