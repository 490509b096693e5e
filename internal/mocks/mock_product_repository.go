package mocks

import (
	"context"

	"github.com/Dilshan221/bakery-management/domain"
)

// MockProductRepository implements domain.ProductRepository for testing
type MockProductRepository struct {
	CreateFunc   func(ctx context.Context, product *domain.Product) error
	ListFunc     func(ctx context.Context) ([]*domain.Product, error)
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Product, error)
	UpdateFunc   func(ctx context.Context, product *domain.Product) error
	DeleteFunc   func(ctx context.Context, id uint) (*domain.Product, error)
}

// NewMockProductRepository creates a new MockProductRepository with default behaviors
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) (*domain.Product, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

// Compile-time interface compliance verification
var _ domain.ProductRepository = (*MockProductRepository)(nil)
