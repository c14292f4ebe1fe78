package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	"github.com/stretchr/testify/mock"
)

type AccessService struct {
	mock.Mock
}

func (m *AccessService) Principal(ctx context.Context, userID string) (models.Principal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.Principal), args.Error(1)
}
