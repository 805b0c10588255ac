package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nhalm/canonlog"
	"github.com/shopspring/decimal"

	"github.com/Neeraj921721/product-catalog-backend/internal/apperrors"
	"github.com/Neeraj921721/product-catalog-backend/internal/ingest"
	"github.com/Neeraj921721/product-catalog-backend/internal/models"
	"github.com/Neeraj921721/product-catalog-backend/internal/pagination"
)

// uploadMemoryBytes is how much of a multipart upload is buffered in memory
// before spilling to temporary files.
const uploadMemoryBytes = 8 << 20

// ProductService defines only the methods the API layer needs from the product service.
type ProductService interface {
	ListProducts(ctx context.Context, params models.ListProductsParams) (*models.ListProductsResult, error)
	SearchProducts(ctx context.Context, params models.SearchProductsParams) (*models.ListProductsResult, error)
	GetProduct(ctx context.Context, params models.GetProductParams) (*models.Product, error)
	UploadProducts(ctx context.Context, filename string, data []byte) (*models.IngestSummary, error)
	Health(ctx context.Context) error
}

type HandlerConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type Handler struct {
	productSvc ProductService
	config     HandlerConfig
}

func NewHandler(productSvc ProductService, config HandlerConfig) *Handler {
	if config.DefaultPageSize <= 0 {
		config.DefaultPageSize = pagination.DefaultSize
	}
	if config.MaxPageSize <= 0 {
		config.MaxPageSize = pagination.MaxSize
	}
	return &Handler{
		productSvc: productSvc,
		config:     config,
	}
}

// Welcome godoc
// @Summary Welcome message
// @Tags meta
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (h *Handler) Welcome(w http.ResponseWriter, _ *http.Request) {
	Success(w, MessageResponse{Message: "Welcome to the Product Catalog Backend Project!"})
}

// Health godoc
// @Summary Database readiness check
// @Tags meta
// @Success 200 {string} string "OK"
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.productSvc.Health(r.Context()); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Items per page"
// @Success 200 {object} PageResponse{items=[]ProductResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, size, err := h.pageParams(r)
	if err != nil {
		BadRequest(w, r, err, err.Error(), "")
		return
	}

	result, err := h.productSvc.ListProducts(r.Context(), models.ListProductsParams{
		Page: page,
		Size: size,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	renderPage(w, result)
}

// SearchProducts godoc
// @Summary Search products
// @Description Case-insensitive substring match on brand and color. The MRP range applies only when both bounds are given.
// @Tags products
// @Produce json
// @Param brand query string false "Brand substring"
// @Param color query string false "Color substring"
// @Param min_price query number false "Lower MRP bound (needs max_price)"
// @Param max_price query number false "Upper MRP bound (needs min_price)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Items per page"
// @Success 200 {object} PageResponse{items=[]ProductResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/search [get]
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	page, size, err := h.pageParams(r)
	if err != nil {
		BadRequest(w, r, err, err.Error(), "")
		return
	}

	q := r.URL.Query()
	query := SearchQuery{
		Brand:    q.Get("brand"),
		Color:    q.Get("color"),
		MinPrice: q.Get("min_price"),
		MaxPrice: q.Get("max_price"),
	}
	if err := ValidateStruct(query); err != nil {
		BadRequest(w, r, err, err.Error(), "")
		return
	}

	minPrice, err := decimalOrNil(query.MinPrice)
	if err != nil {
		BadRequest(w, r, err, "min_price must be a number", "min_price")
		return
	}
	maxPrice, err := decimalOrNil(query.MaxPrice)
	if err != nil {
		BadRequest(w, r, err, "max_price must be a number", "max_price")
		return
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"search_brand":     query.Brand,
		"search_color":     query.Color,
		"search_min_price": query.MinPrice,
		"search_max_price": query.MaxPrice,
	})

	result, err := h.productSvc.SearchProducts(r.Context(), models.SearchProductsParams{
		Brand:    ptrOrNil(query.Brand),
		Color:    ptrOrNil(query.Color),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	renderPage(w, result)
}

// GetProduct godoc
// @Summary Get a product by SKU
// @Tags products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{sku} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	product, err := h.productSvc.GetProduct(r.Context(), models.GetProductParams{
		SKU: sku,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToProductResponse(product))
}

// UploadProducts godoc
// @Summary Bulk upload products from CSV
// @Description Rows failing validation are returned verbatim in failed. Existing SKUs are skipped.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV with header sku,name,brand,color,mrp,price,quantity"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/upload [post]
func (h *Handler) UploadProducts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemoryBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			RequestTooLarge(w, r, err, "upload exceeds the maximum allowed size")
			return
		}
		BadRequest(w, r, err, "request must be multipart/form-data", "file")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequest(w, r, err, "file is required", "file")
		return
	}
	defer file.Close()

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"upload_filename": header.Filename,
		"upload_bytes":    header.Size,
	})

	if !ingest.IsCSVFilename(header.Filename) {
		handleServiceError(w, r, apperrors.NewUnsupportedFormatError(header.Filename))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		BadRequest(w, r, err, "could not read uploaded file", "file")
		return
	}

	summary, err := h.productSvc.UploadProducts(r.Context(), header.Filename, data)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, UploadResponse{
		Stored: summary.Stored,
		Failed: summary.Failed,
	})
}

// pageParams reads page and size, applying the configured defaults and
// ceiling.
func (h *Handler) pageParams(r *http.Request) (int, int, error) {
	query := PageQuery{
		Page: r.URL.Query().Get("page"),
		Size: r.URL.Query().Get("size"),
	}
	if err := ValidateStruct(query); err != nil {
		return 0, 0, err
	}

	page, _ := strconv.Atoi(query.Page)
	size, _ := strconv.Atoi(query.Size)
	page, size = pagination.Normalize(page, size, h.config.DefaultPageSize, h.config.MaxPageSize)
	return page, size, nil
}

func renderPage(w http.ResponseWriter, result *models.ListProductsResult) {
	responses := make([]ProductResponse, len(result.Products))
	for i := range result.Products {
		responses[i] = convertToProductResponse(&result.Products[i])
	}

	Paginated(w, responses, result.Page, result.Size, result.Total, result.Pages)
}

func convertToProductResponse(product *models.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		Brand:     product.Brand,
		Color:     product.Color,
		MRP:       json.Number(product.MRP.StringFixed(2)),
		Quantity:  product.Quantity,
		CreatedAt: product.CreatedAt.Format(time.RFC3339),
	}
}

func decimalOrNil(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
