package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/petdailykit/catalog/internal/domain"
	"github.com/petdailykit/catalog/pkg/database"
	apperrors "github.com/petdailykit/catalog/pkg/errors"
)

// productColumns is the standard SELECT column list for products.
const productColumns = `id, product_title, category_id, subcategory_id, sku, short_description, long_description`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product and assigns the generated identifier.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (product_title, category_id, subcategory_id, sku, short_description, long_description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateProduct", query)
	err := r.pool.QueryRow(ctx, query,
		p.Title,
		p.CategoryID,
		p.SubcategoryID,
		p.SKU,
		p.ShortDescription,
		p.LongDescription,
	).Scan(&p.ID)
	end(err)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "sku", p.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	return r.scanProduct(ctx, "GetProductByID", query, id)
}

// GetByTitle retrieves a product by its exact title.
func (r *ProductRepository) GetByTitle(ctx context.Context, title string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE product_title = $1`, productColumns)
	return r.scanProduct(ctx, "GetProductByTitle", query, title)
}

// List returns all products, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id DESC`, productColumns)

	ctx, end := database.TraceQuery(ctx, "ListProducts", query)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.CategoryID,
			&p.SubcategoryID,
			&p.SKU,
			&p.ShortDescription,
			&p.LongDescription,
		); err != nil {
			end(err)
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	err = rows.Err()
	end(err)
	if err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET product_title = $1, category_id = $2, subcategory_id = $3,
		    sku = $4, short_description = $5, long_description = $6
		WHERE id = $7`

	ctx, end := database.TraceQuery(ctx, "UpdateProduct", query)
	ct, err := r.pool.Exec(ctx, query,
		p.Title,
		p.CategoryID,
		p.SubcategoryID,
		p.SKU,
		p.ShortDescription,
		p.LongDescription,
		p.ID,
	)
	end(err)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "sku", p.SKU)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Product")
	}

	return nil
}

// Delete removes a product by its identifier. Sizes, colors, and variations
// are removed by the schema's cascade rules.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteProduct", query)
	ct, err := r.pool.Exec(ctx, query, id)
	end(err)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Product")
	}

	return nil
}

// scanProduct executes a query expected to return at most one product row.
func (r *ProductRepository) scanProduct(ctx context.Context, operation, query string, args ...any) (*domain.Product, error) {
	var p domain.Product

	ctx, end := database.TraceQuery(ctx, operation, query)
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Title,
		&p.CategoryID,
		&p.SubcategoryID,
		&p.SKU,
		&p.ShortDescription,
		&p.LongDescription,
	)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Product")
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
