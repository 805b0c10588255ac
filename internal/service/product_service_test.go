package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neeraj921721/product-catalog-backend/internal/apperrors"
	"github.com/Neeraj921721/product-catalog-backend/internal/filter"
	"github.com/Neeraj921721/product-catalog-backend/internal/models"
	"github.com/Neeraj921721/product-catalog-backend/internal/repository"
	"github.com/Neeraj921721/product-catalog-backend/internal/service"
)

// --- Mock Repository ---

type mockRepo struct {
	products   []models.Product
	lastFilter filter.Predicate
	pingErr    error
	listErr    error
}

func (m *mockRepo) ListAll(_ context.Context) ([]models.Product, error) {
	return m.products, m.listErr
}

func (m *mockRepo) Search(_ context.Context, pred filter.Predicate) ([]models.Product, error) {
	m.lastFilter = pred
	return m.products, m.listErr
}

func (m *mockRepo) GetBySKU(_ context.Context, sku string) (*models.Product, error) {
	for i := range m.products {
		if m.products[i].SKU == sku {
			return &m.products[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockRepo) InsertBatch(_ context.Context, products []models.NewProduct) (int, error) {
	inserted := 0
	for _, p := range products {
		if _, err := m.GetBySKU(context.Background(), p.SKU); err == nil {
			continue
		}
		m.products = append(m.products, models.Product{
			ID:       "prod_" + p.SKU,
			SKU:      p.SKU,
			Name:     p.Name,
			Brand:    p.Brand,
			Color:    p.Color,
			MRP:      p.MRP,
			Quantity: p.Quantity,
		})
		inserted++
	}
	return inserted, nil
}

func (m *mockRepo) Ping(_ context.Context) error {
	return m.pingErr
}

func seeded(n int) *mockRepo {
	repo := &mockRepo{}
	for i := 0; i < n; i++ {
		repo.products = append(repo.products, models.Product{
			SKU: string(rune('A' + i)),
			MRP: decimal.NewFromInt(int64(10 * (i + 1))),
		})
	}
	return repo
}

func TestListProducts_Paginates(t *testing.T) {
	svc := service.NewProductService(seeded(5))

	result, err := svc.ListProducts(context.Background(), models.ListProductsParams{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Len(t, result.Products, 2)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Pages)

	result, err = svc.ListProducts(context.Background(), models.ListProductsParams{Page: 10, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Pages)
}

func TestListProducts_StorageError(t *testing.T) {
	repo := seeded(1)
	repo.listErr = apperrors.NewStorageError("list products", errors.New("boom"))
	svc := service.NewProductService(repo)

	_, err := svc.ListProducts(context.Background(), models.ListProductsParams{Page: 1, Size: 10})

	var storageErr *apperrors.StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestSearchProducts_BuildsPredicate(t *testing.T) {
	repo := seeded(3)
	svc := service.NewProductService(repo)

	color := "red"
	lo := decimal.NewFromInt(1)
	_, err := svc.SearchProducts(context.Background(), models.SearchProductsParams{
		Color:    &color,
		MinPrice: &lo,
		Page:     1,
		Size:     10,
	})
	require.NoError(t, err)

	clauses := repo.lastFilter.Clauses()
	require.Len(t, clauses, 1, "single price bound must not add a range clause")
	assert.Equal(t, filter.Substring{Field: filter.FieldColor, Text: "red"}, clauses[0])
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := service.NewProductService(seeded(1))

	_, err := svc.GetProduct(context.Background(), models.GetProductParams{SKU: "missing"})

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ID)
}

func TestUploadProducts_ThenList(t *testing.T) {
	repo := &mockRepo{}
	svc := service.NewProductService(repo)

	csv := "sku,name,brand,color,mrp,price,quantity\n" +
		"A1,Shirt,Acme,Blue,500,450,10\n" +
		"A2,Bad,Acme,Red,100,150,5\n"

	summary, err := svc.UploadProducts(context.Background(), "products.csv", []byte(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stored)
	require.Len(t, summary.Failed, 1)

	result, err := svc.ListProducts(context.Background(), models.ListProductsParams{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "A1", result.Products[0].SKU)
}

func TestHealth(t *testing.T) {
	repo := seeded(0)
	svc := service.NewProductService(repo)
	assert.NoError(t, svc.Health(context.Background()))

	repo.pingErr = errors.New("dial tcp: refused")
	err := svc.Health(context.Background())

	var unavailable *apperrors.ServiceUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}
