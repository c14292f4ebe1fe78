package service

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/cache"
	appErrors "github.com/aaravmahajanofficial/catalog-cart-service/internal/errors"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/metrics"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// AllCategories selects every product in ListByCategory.
	AllCategories = "all"

	similarLimit = 5
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) ([]*models.Product, error)
	DeleteProduct(ctx context.Context, principal models.Principal, id string) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.ProductDetail, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Product, error)
	SearchProducts(ctx context.Context, key string) ([]*models.Product, error)
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
}

type productService struct {
	repo   repository.ProductRepository
	cache  *cache.ReadThrough
	policy *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, products *cache.ReadThrough) ProductService {
	return &productService{
		repo:   repo,
		cache:  products,
		policy: bluemonday.StrictPolicy(),
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) ([]*models.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	if req.Price == nil || req.Stocks == nil {
		return nil, appErrors.ValidationError("Price and stocks are required")
	}
	if *req.Price < 0 || *req.Stocks < 0 {
		return nil, appErrors.ValidationError("Price and stocks must not be negative")
	}

	product := &models.Product{
		Name:        s.sanitize(req.Name),
		Description: s.sanitize(req.Description),
		Price:       *req.Price,
		Category:    s.sanitize(req.Category),
		Pictures:    cleanPictures(req.Images),
		Stocks:      *req.Stocks,
	}

	if product.Name == "" || product.Description == "" || product.Category == "" {
		return nil, appErrors.ValidationError("Name, description and category must contain text")
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	span.SetAttributes(attribute.String("product.id", product.ID))
	middleware.LoggerFromContext(ctx).Info("Product created", slog.String("product_id", product.ID))

	return s.ListProducts(ctx)
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) ([]*models.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.UpdateProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	patch := &models.ProductPatch{
		Price:  req.Price,
		Stocks: req.Stocks,
	}

	for _, field := range []struct {
		in  *string
		out **string
	}{
		{req.Name, &patch.Name},
		{req.Description, &patch.Description},
		{req.Category, &patch.Category},
	} {
		if field.in == nil {
			continue
		}
		clean := s.sanitize(*field.in)
		if clean == "" {
			return nil, appErrors.ValidationError("Name, description and category must contain text")
		}
		*field.out = &clean
	}

	if req.Images != nil {
		pictures := cleanPictures(*req.Images)
		patch.Pictures = &pictures
	}

	if (patch.Price != nil && *patch.Price < 0) || (patch.Stocks != nil && *patch.Stocks < 0) {
		return nil, appErrors.ValidationError("Price and stocks must not be negative")
	}

	if patch.IsEmpty() {
		middleware.LoggerFromContext(ctx).Debug("Product update carries no fields, only touching updatedAt", slog.String("product_id", id))
	}

	if err := s.repo.UpdateProduct(ctx, id, patch); err != nil {
		return nil, productLookupError(err, "Failed to update product")
	}

	s.cache.Invalidate(ctx, cache.ProductKey(canonicalID(id)))

	return s.ListProducts(ctx)
}

func (s *productService) DeleteProduct(ctx context.Context, principal models.Principal, id string) ([]*models.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	if !principal.IsAdmin {
		middleware.LoggerFromContext(ctx).Warn("Product delete denied", slog.String("user_id", principal.UserID), slog.String("product_id", id))
		return nil, appErrors.PermissionDeniedError("You don't have permission")
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return nil, productLookupError(err, "Failed to delete product")
	}

	s.cache.Invalidate(ctx, cache.ProductKey(canonicalID(id)))
	middleware.LoggerFromContext(ctx).Info("Product deleted", slog.String("product_id", id), slog.String("user_id", principal.UserID))

	return s.ListProducts(ctx)
}

func (s *productService) GetProduct(ctx context.Context, id string) (*models.ProductDetail, error) {
	ctx, span := tracer.Start(ctx, "ProductService.GetProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product, hit, err := cache.Fetch(ctx, s.cache, cache.ProductKey(canonicalID(id)), func(ctx context.Context) (*models.Product, error) {
		return s.repo.GetProductByID(ctx, id)
	})
	if err != nil {
		return nil, productLookupError(err, "Failed to fetch product")
	}

	metrics.RecordCacheLookup(hit)
	span.SetAttributes(attribute.Bool("cache.hit", hit))

	similar, err := s.repo.ListSimilar(ctx, product.Category, product.ID, similarLimit)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch similar products").WithError(err)
	}

	return &models.ProductDetail{Product: product, Similar: similar}, nil
}

func (s *productService) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	if category == AllCategories {
		return s.ListProducts(ctx)
	}

	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *productService) SearchProducts(ctx context.Context, key string) ([]*models.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.SearchProducts")
	defer span.End()

	products, err := s.repo.SearchProducts(ctx, key)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search products").WithError(err)
	}

	span.SetAttributes(attribute.Int("search.results", len(products)))

	return products, nil
}

// AdjustStock adds delta to the product's stock. A delta that would leave the
// stock negative is rejected without changing anything.
func (s *productService) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	stocks, err := s.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrStockConflict) {
			return 0, appErrors.InsufficientStockError("Insufficient stock").WithError(err)
		}
		return 0, productLookupError(err, "Failed to update stock")
	}

	s.cache.Invalidate(ctx, cache.ProductKey(canonicalID(id)))

	return stocks, nil
}

// textEntities are the escapes bluemonday adds to plain text. Angle brackets
// stay escaped.
var textEntities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)

// sanitize strips markup from user supplied text and keeps plain characters
// such as '&' readable. Entities are decoded before the policy runs so encoded
// tags are stripped too.
func (s *productService) sanitize(value string) string {
	return strings.TrimSpace(textEntities.Replace(s.policy.Sanitize(html.UnescapeString(value))))
}

func cleanPictures(images []string) []string {
	pictures := make([]string, 0, len(images))
	for _, image := range images {
		if image = strings.TrimSpace(image); image != "" {
			pictures = append(pictures, image)
		}
	}

	return pictures
}

func productLookupError(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.NotFoundError("Product not found").WithError(err)
	}

	return appErrors.DatabaseError(message).WithError(err)
}
