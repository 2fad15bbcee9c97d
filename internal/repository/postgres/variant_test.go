package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petdailykit/catalog/internal/domain"
	"github.com/petdailykit/catalog/pkg/database"
)

func TestVariantRepository_SizesByProduct(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVariantRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, size FROM sizes WHERE product_id = $1 ORDER BY id")).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "size"}).
			AddRow(int64(1), "S").
			AddRow(int64(2), "M").
			AddRow(int64(3), "L"))

	sizes, err := repo.SizesByProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []domain.Size{
		{ID: 1, Label: "S"},
		{ID: 2, Label: "M"},
		{ID: 3, Label: "L"},
	}, sizes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_SizesByProduct_Empty(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVariantRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, size FROM sizes")).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "size"}))

	sizes, err := repo.SizesByProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, sizes)
	assert.Empty(t, sizes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_ColorsByProductAndSize(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVariantRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, color, image_url FROM colors WHERE product_id = $1 AND size_id = $2 ORDER BY id")).
		WithArgs(int64(42), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "color", "image_url"}).
			AddRow(int64(10), "Red", "https://img.example/red-m.jpg").
			AddRow(int64(11), "Blue", "https://img.example/blue-m.jpg"))

	colors, err := repo.ColorsByProductAndSize(context.Background(), 42, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.Color{
		{ID: 10, Label: "Red", ImageURL: "https://img.example/red-m.jpg"},
		{ID: 11, Label: "Blue", ImageURL: "https://img.example/blue-m.jpg"},
	}, colors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_ColorsByProductAndSize_QueryError(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVariantRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM colors")).
		WithArgs(int64(42), int64(2)).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.ColorsByProductAndSize(context.Background(), 42, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query colors")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_VariationsByProduct(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVariantRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT size_id, color_id, price, stock FROM variations WHERE product_id = $1 ORDER BY id")).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"size_id", "color_id", "price", "stock"}).
			AddRow(int64(2), int64(10), 19.99, 5).
			AddRow(int64(2), int64(11), 21.50, 0))

	variations, err := repo.VariationsByProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []domain.Variation{
		{SizeID: 2, ColorID: 10, Price: 19.99, Stock: 5},
		{SizeID: 2, ColorID: 11, Price: 21.50, Stock: 0},
	}, variations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_PriceRangeByProduct(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVariantRepository(mock)

	min, max := 19.99, 34.00
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MIN(price) AS min_price, MAX(price) AS max_price FROM variations WHERE product_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"min_price", "max_price"}).AddRow(&min, &max))

	pr, err := repo.PriceRangeByProduct(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, pr.Min)
	require.NotNil(t, pr.Max)
	assert.Equal(t, 19.99, *pr.Min)
	assert.Equal(t, 34.00, *pr.Max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_PriceRangeByProduct_NoVariations(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVariantRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM variations WHERE product_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"min_price", "max_price"}).AddRow(nil, nil))

	pr, err := repo.PriceRangeByProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, pr.Min)
	assert.Nil(t, pr.Max)
	assert.NoError(t, mock.ExpectationsWereMet())
}
