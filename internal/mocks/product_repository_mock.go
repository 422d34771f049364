package mocks

import (
	"context"

	"catalog-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ProductRepository struct{ mock.Mock }

func (m *ProductRepository) Create(props domain.CreateProductInput) *domain.Product {
	return m.Called(props).Get(0).(*domain.Product)
}

func (m *ProductRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(*domain.Product)
	return out, args.Error(1)
}

func (m *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*domain.Product)
	return out, args.Error(1)
}

func (m *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	args := m.Called(ctx, name)
	out, _ := args.Get(0).(*domain.Product)
	return out, args.Error(1)
}

func (m *ProductRepository) FindAllByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).([]domain.Product)
	return out, args.Error(1)
}

func (m *ProductRepository) ConflictingName(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(*domain.Product)
	return out, args.Error(1)
}

func (m *ProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOutput[domain.Product], error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.SearchOutput[domain.Product]), args.Error(1)
}
