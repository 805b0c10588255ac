package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/nhalm/pgxkit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neeraj921721/product-catalog-backend/internal/filter"
	"github.com/Neeraj921721/product-catalog-backend/internal/models"
)

// newTestRepository connects to TEST_DATABASE_URL, applies the schema and
// empties the products table. Tests are skipped when the variable is unset.
func newTestRepository(t *testing.T) *ProductRepository {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db := pgxkit.NewDB()
	require.NoError(t, db.Connect(ctx, url))
	t.Cleanup(func() { _ = db.Shutdown(ctx) })

	schema, err := os.ReadFile("../database/migrations/000001_create_products.up.sql")
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	require.NoError(t, err)
	_, err = tx.Exec(ctx, string(schema))
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `TRUNCATE products`)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	return NewProductRepository(db)
}

func newProduct(sku, brand string, color *string, mrp int64) models.NewProduct {
	return models.NewProduct{
		SKU:      sku,
		Name:     "Item " + sku,
		Brand:    brand,
		Color:    color,
		MRP:      decimal.NewFromInt(mrp),
		Quantity: 1,
	}
}

func strPtr(s string) *string { return &s }

func TestProductRepository_InsertBatchSkipsExistingSKUs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	inserted, err := repo.InsertBatch(ctx, []models.NewProduct{
		newProduct("A1", "Acme", strPtr("Blue"), 500),
		newProduct("A2", "Acme", nil, 100),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	changed := newProduct("A1", "Other", nil, 1)
	inserted, err = repo.InsertBatch(ctx, []models.NewProduct{changed, newProduct("A3", "Zed", nil, 50)})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	existing, err := repo.GetBySKU(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", existing.Brand, "conflicting insert must not update")
	assert.True(t, existing.MRP.Equal(decimal.NewFromInt(500)))
	assert.Contains(t, existing.ID, "prod_")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProductRepository_InsertIfAbsent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ok, err := repo.InsertIfAbsent(ctx, newProduct("B1", "Acme", nil, 10))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.InsertIfAbsent(ctx, newProduct("B1", "Acme", nil, 10))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductRepository_InsertBatchRollsBackOnFailure(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	bad := newProduct("C2", "Acme", nil, 10)
	bad.Quantity = -1 // violates the CHECK constraint

	_, err := repo.InsertBatch(ctx, []models.NewProduct{newProduct("C1", "Acme", nil, 10), bad})
	require.Error(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductRepository_Search(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.InsertBatch(ctx, []models.NewProduct{
		newProduct("D1", "Acme", strPtr("Dark RED"), 100),
		newProduct("D2", "acme_co", strPtr("Blue"), 200),
		newProduct("D3", "Zed", strPtr("Reddish"), 300),
		newProduct("D4", "Zed", nil, 400),
	})
	require.NoError(t, err)

	skus := func(products []models.Product) []string {
		out := make([]string, len(products))
		for i, p := range products {
			out[i] = p.SKU
		}
		return out
	}

	red := "red"
	got, err := repo.Search(ctx, filter.Build(filter.Params{Color: &red}))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"D1", "D3"}, skus(got))

	underscore := "_"
	got, err = repo.Search(ctx, filter.Build(filter.Params{Brand: &underscore}))
	require.NoError(t, err)
	assert.Equal(t, []string{"D2"}, skus(got))

	lo, hi := decimal.NewFromInt(150), decimal.NewFromInt(300)
	got, err = repo.Search(ctx, filter.Build(filter.Params{MinPrice: &lo, MaxPrice: &hi}))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"D2", "D3"}, skus(got))

	got, err = repo.Search(ctx, filter.Build(filter.Params{MinPrice: &lo}))
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestProductRepository_GetBySKUNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetBySKU(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepository_Ping(t *testing.T) {
	repo := newTestRepository(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
