package postgres

import (
	"context"
	"fmt"

	"github.com/petdailykit/catalog/internal/domain"
	"github.com/petdailykit/catalog/pkg/database"
)

// VariantRepository implements repository.VariantRepository using PostgreSQL.
// It issues the four read queries feeding the aggregation; it performs no
// joining logic and no caching.
type VariantRepository struct {
	pool database.DBTX
}

// NewVariantRepository creates a PostgreSQL-backed variant repository.
func NewVariantRepository(pool database.DBTX) *VariantRepository {
	return &VariantRepository{pool: pool}
}

// SizesByProduct returns the sizes of a product in id order.
func (r *VariantRepository) SizesByProduct(ctx context.Context, productID int64) ([]domain.Size, error) {
	query := `SELECT id, size FROM sizes WHERE product_id = $1 ORDER BY id`

	ctx, end := database.TraceQuery(ctx, "SizesByProduct", query)
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("query sizes: %w", err)
	}
	defer rows.Close()

	sizes := []domain.Size{}
	for rows.Next() {
		var s domain.Size
		if err := rows.Scan(&s.ID, &s.Label); err != nil {
			end(err)
			return nil, fmt.Errorf("scan size row: %w", err)
		}
		sizes = append(sizes, s)
	}

	err = rows.Err()
	end(err)
	if err != nil {
		return nil, fmt.Errorf("iterate size rows: %w", err)
	}

	return sizes, nil
}

// ColorsByProductAndSize returns the colors available at one size of a
// product. Colors carry size-specific image references, so the query is
// scoped by both product and size.
func (r *VariantRepository) ColorsByProductAndSize(ctx context.Context, productID, sizeID int64) ([]domain.Color, error) {
	query := `SELECT id, color, image_url FROM colors WHERE product_id = $1 AND size_id = $2 ORDER BY id`

	ctx, end := database.TraceQuery(ctx, "ColorsByProductAndSize", query)
	rows, err := r.pool.Query(ctx, query, productID, sizeID)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("query colors: %w", err)
	}
	defer rows.Close()

	colors := []domain.Color{}
	for rows.Next() {
		var c domain.Color
		if err := rows.Scan(&c.ID, &c.Label, &c.ImageURL); err != nil {
			end(err)
			return nil, fmt.Errorf("scan color row: %w", err)
		}
		colors = append(colors, c)
	}

	err = rows.Err()
	end(err)
	if err != nil {
		return nil, fmt.Errorf("iterate color rows: %w", err)
	}

	return colors, nil
}

// VariationsByProduct returns all variation rows of a product in one call.
func (r *VariantRepository) VariationsByProduct(ctx context.Context, productID int64) ([]domain.Variation, error) {
	query := `SELECT size_id, color_id, price, stock FROM variations WHERE product_id = $1 ORDER BY id`

	ctx, end := database.TraceQuery(ctx, "VariationsByProduct", query)
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("query variations: %w", err)
	}
	defer rows.Close()

	variations := []domain.Variation{}
	for rows.Next() {
		var v domain.Variation
		if err := rows.Scan(&v.SizeID, &v.ColorID, &v.Price, &v.Stock); err != nil {
			end(err)
			return nil, fmt.Errorf("scan variation row: %w", err)
		}
		variations = append(variations, v)
	}

	err = rows.Err()
	end(err)
	if err != nil {
		return nil, fmt.Errorf("iterate variation rows: %w", err)
	}

	return variations, nil
}

// PriceRangeByProduct returns the min/max variation price of a product.
// Both bounds are nil when the product has no variations (SQL aggregates
// over an empty set return NULL).
func (r *VariantRepository) PriceRangeByProduct(ctx context.Context, productID int64) (domain.PriceRange, error) {
	query := `SELECT MIN(price) AS min_price, MAX(price) AS max_price FROM variations WHERE product_id = $1`

	var pr domain.PriceRange

	ctx, end := database.TraceQuery(ctx, "PriceRangeByProduct", query)
	err := r.pool.QueryRow(ctx, query, productID).Scan(&pr.Min, &pr.Max)
	end(err)
	if err != nil {
		return domain.PriceRange{}, fmt.Errorf("query price range: %w", err)
	}

	return pr, nil
}
