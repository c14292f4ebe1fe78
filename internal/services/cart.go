package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/cache"
	appErrors "github.com/aaravmahajanofficial/catalog-cart-service/internal/errors"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/lock"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/metrics"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	opAddToCart = "add"
	opIncrease  = "increase"
	opDecrease  = "decrease"
	opRemove    = "remove"
)

type CartService interface {
	AddToCart(ctx context.Context, req *models.AddToCartRequest) (*models.User, error)
	IncreaseCartItem(ctx context.Context, req *models.CartItemRequest) (*models.User, error)
	DecreaseCartItem(ctx context.Context, req *models.CartItemRequest) (*models.User, error)
	RemoveFromCart(ctx context.Context, req *models.CartItemRequest) (*models.User, error)
}

// cartMutation applies one change to cart and returns the stock delta that
// must accompany it. It must not touch the store.
type cartMutation func(cart *models.Cart, product *models.Product) (int, error)

type cartService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	catalog  ProductService
	tx       repository.Transactor
	locker   lock.Locker
	cache    *cache.ReadThrough
}

func NewCartService(
	users repository.UserRepository,
	products repository.ProductRepository,
	catalog ProductService,
	tx repository.Transactor,
	locker lock.Locker,
	productCache *cache.ReadThrough,
) CartService {
	return &cartService{
		users:    users,
		products: products,
		catalog:  catalog,
		tx:       tx,
		locker:   locker,
		cache:    productCache,
	}
}

func (s *cartService) AddToCart(ctx context.Context, req *models.AddToCartRequest) (*models.User, error) {
	if req.Quantity < 1 {
		return nil, appErrors.ValidationError("Quantity must be at least 1")
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, appErrors.ValidationError("Price must not be negative")
	}

	price, quantity := *req.Price, req.Quantity

	return s.mutate(ctx, opAddToCart, req.UserID, req.ProductID, func(cart *models.Cart, product *models.Product) (int, error) {
		if quantity > product.Stocks {
			return 0, appErrors.InsufficientStockError("Insufficient stock")
		}

		cart.Add(product.ID, quantity, price)

		return -quantity, nil
	})
}

func (s *cartService) IncreaseCartItem(ctx context.Context, req *models.CartItemRequest) (*models.User, error) {
	price, err := itemPrice(req)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, opIncrease, req.UserID, req.ProductID, func(cart *models.Cart, product *models.Product) (int, error) {
		if product.Stocks < 1 {
			return 0, appErrors.OutOfStockError("No stock available")
		}
		if cart.Quantity(product.ID) < 1 {
			return 0, appErrors.NotInCartError("Product not found in cart")
		}

		cart.Add(product.ID, 1, price)

		return -1, nil
	})
}

func (s *cartService) DecreaseCartItem(ctx context.Context, req *models.CartItemRequest) (*models.User, error) {
	price, err := itemPrice(req)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, opDecrease, req.UserID, req.ProductID, func(cart *models.Cart, product *models.Product) (int, error) {
		if cart.Quantity(product.ID) < 1 {
			return 0, appErrors.NotInCartError("Product not found in cart")
		}

		cart.Decrement(product.ID, price)

		return 1, nil
	})
}

func (s *cartService) RemoveFromCart(ctx context.Context, req *models.CartItemRequest) (*models.User, error) {
	price, err := itemPrice(req)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, opRemove, req.UserID, req.ProductID, func(cart *models.Cart, product *models.Product) (int, error) {
		if cart.Quantity(product.ID) < 1 {
			return 0, appErrors.NotInCartError("Product not found in cart")
		}

		return cart.Remove(product.ID, price), nil
	})
}

// mutate runs one cart change under the user and product locks. Every check
// happens before the first write; the cart is written before the stock.
func (s *cartService) mutate(ctx context.Context, op, userID, productID string, apply cartMutation) (user *models.User, err error) {
	ctx, span := tracer.Start(ctx, "CartService."+op, trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
	))
	defer span.End()

	logger := middleware.LoggerFromContext(ctx).With(
		slog.String("cart_op", op),
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	defer func() {
		result := "success"
		if err != nil {
			result = "error"
			if appErr, ok := appErrors.IsAppError(err); ok {
				result = strings.ToLower(appErr.Code)
			}
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.RecordCartOperation(op, result)
	}()

	release, err := s.locker.Acquire(ctx, lock.UserKey(canonicalID(userID)), lock.ProductKey(canonicalID(productID)))
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			return nil, appErrors.ConflictError("Resource is busy, retry later").WithError(err)
		}
		return nil, appErrors.InternalError("Failed to acquire lock").WithError(err)
	}
	defer release()

	var updated *models.User

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return userLookupError(err)
		}

		product, err := s.products.GetProductByID(ctx, productID)
		if err != nil {
			return productLookupError(err, "Failed to fetch product")
		}

		previous := current.Cart.Clone()

		delta, err := apply(&current.Cart, product)
		if err != nil {
			return err
		}

		if err := s.users.UpdateCart(ctx, current.ID, current.Cart); err != nil {
			return appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		if _, err := s.catalog.AdjustStock(ctx, product.ID, delta); err != nil {
			if !s.tx.Atomic() {
				s.restoreCart(ctx, logger, current.ID, previous)
			}
			return err
		}

		updated = current

		return nil
	})

	// stock reads cached during the transaction may predate the commit
	s.cache.Invalidate(ctx, cache.ProductKey(canonicalID(productID)))

	if err != nil {
		if _, ok := appErrors.IsAppError(err); ok {
			logger.Warn("Cart update rejected", slog.String("error", err.Error()))
			return nil, err
		}
		logger.Error("Cart transaction failed", slog.Any("error", err))
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	logger.Info("Cart updated", slog.Int("cart_count", updated.Cart.Count), slog.Float64("cart_total", updated.Cart.Total))

	return updated, nil
}

// restoreCart undoes the cart write when the stock write failed on a store
// without transactions.
func (s *cartService) restoreCart(ctx context.Context, logger *slog.Logger, userID string, previous models.Cart) {
	if err := s.users.UpdateCart(ctx, userID, previous); err != nil {
		logger.Error("Failed to restore cart after stock update failure", slog.Any("error", err))
		return
	}

	logger.Warn("Cart restored after stock update failure")
}

func itemPrice(req *models.CartItemRequest) (float64, error) {
	if req.Price == nil || *req.Price < 0 {
		return 0, appErrors.ValidationError("Price must not be negative")
	}

	return *req.Price, nil
}
