package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) UpdateCart(ctx context.Context, id string, cart models.Cart) error {
	args := m.Called(ctx, id, cart)
	return args.Error(0)
}
