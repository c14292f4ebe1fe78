package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) AddToCart(ctx context.Context, req *models.AddToCartRequest) (*models.User, error) {
	return user(m.Called(ctx, req))
}

func (m *CartService) IncreaseCartItem(ctx context.Context, req *models.CartItemRequest) (*models.User, error) {
	return user(m.Called(ctx, req))
}

func (m *CartService) DecreaseCartItem(ctx context.Context, req *models.CartItemRequest) (*models.User, error) {
	return user(m.Called(ctx, req))
}

func (m *CartService) RemoveFromCart(ctx context.Context, req *models.CartItemRequest) (*models.User, error) {
	return user(m.Called(ctx, req))
}

func user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
