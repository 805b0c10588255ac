package service

import (
	"context"
	"errors"

	"github.com/Neeraj921721/product-catalog-backend/internal/apperrors"
	"github.com/Neeraj921721/product-catalog-backend/internal/filter"
	"github.com/Neeraj921721/product-catalog-backend/internal/ingest"
	"github.com/Neeraj921721/product-catalog-backend/internal/models"
	"github.com/Neeraj921721/product-catalog-backend/internal/pagination"
	"github.com/Neeraj921721/product-catalog-backend/internal/repository"
)

type ProductRepository interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, pred filter.Predicate) ([]models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	InsertBatch(ctx context.Context, products []models.NewProduct) (int, error)
	Ping(ctx context.Context) error
}

type ProductService struct {
	repo     ProductRepository
	pipeline *ingest.Pipeline
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		pipeline: ingest.NewPipeline(repo),
	}
}

func (s *ProductService) ListProducts(ctx context.Context, params models.ListProductsParams) (*models.ListProductsResult, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return toResult(pagination.Paginate(products, params.Page, params.Size)), nil
}

// SearchProducts filters by brand, color and MRP range. The price range is
// applied only when both bounds are supplied.
func (s *ProductService) SearchProducts(ctx context.Context, params models.SearchProductsParams) (*models.ListProductsResult, error) {
	pred := filter.Build(filter.Params{
		Brand:    params.Brand,
		Color:    params.Color,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
	})

	products, err := s.repo.Search(ctx, pred)
	if err != nil {
		return nil, err
	}

	return toResult(pagination.Paginate(products, params.Page, params.Size)), nil
}

func (s *ProductService) GetProduct(ctx context.Context, params models.GetProductParams) (*models.Product, error) {
	product, err := s.repo.GetBySKU(ctx, params.SKU)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("product", params.SKU)
		}
		return nil, err
	}

	return product, nil
}

// UploadProducts ingests a CSV upload. See ingest.Pipeline for row handling.
func (s *ProductService) UploadProducts(ctx context.Context, filename string, data []byte) (*models.IngestSummary, error) {
	return s.pipeline.Ingest(ctx, filename, data)
}

func (s *ProductService) Health(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return apperrors.NewServiceUnavailableError("database unreachable")
	}
	return nil
}

func toResult(page pagination.Page[models.Product]) *models.ListProductsResult {
	return &models.ListProductsResult{
		Products: page.Items,
		Page:     page.Page,
		Size:     page.Size,
		Total:    page.Total,
		Pages:    page.Pages,
	}
}
