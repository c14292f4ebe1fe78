package repository

import (
	"context"
	"errors"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrStockConflict is returned by AdjustStock when applying the delta
	// would leave the product with negative stock.
	ErrStockConflict = errors.New("stock would become negative")
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) error
	DeleteProduct(ctx context.Context, id string) error
	// ListProducts returns every product, newest first.
	ListProducts(ctx context.Context) ([]*models.Product, error)
	// ListByCategory returns the products of one category, newest first.
	ListByCategory(ctx context.Context, category string) ([]*models.Product, error)
	// ListSimilar returns up to limit products of category other than excludeID.
	ListSimilar(ctx context.Context, category, excludeID string, limit int) ([]*models.Product, error)
	// SearchProducts matches key case-insensitively as a substring of name,
	// description or category.
	SearchProducts(ctx context.Context, key string) ([]*models.Product, error)
	// AdjustStock adds delta to the product's stocks and returns the new value.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
}

type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateCart(ctx context.Context, id string, cart models.Cart) error
}

// Transactor runs fn so that the writes it performs through the repositories
// commit together. Atomic reports whether the backend really provides that
// guarantee; when it does not, fn runs directly against the store.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Atomic() bool
}
