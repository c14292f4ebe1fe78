package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (m *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return products(args)
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) ([]*models.Product, error) {
	args := m.Called(ctx, req)
	return products(args)
}

func (m *ProductService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) ([]*models.Product, error) {
	args := m.Called(ctx, id, req)
	return products(args)
}

func (m *ProductService) DeleteProduct(ctx context.Context, principal models.Principal, id string) ([]*models.Product, error) {
	args := m.Called(ctx, principal, id)
	return products(args)
}

func (m *ProductService) GetProduct(ctx context.Context, id string) (*models.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductDetail), args.Error(1)
}

func (m *ProductService) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	args := m.Called(ctx, category)
	return products(args)
}

func (m *ProductService) SearchProducts(ctx context.Context, key string) ([]*models.Product, error) {
	args := m.Called(ctx, key)
	return products(args)
}

func (m *ProductService) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

func products(args mock.Arguments) ([]*models.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}
