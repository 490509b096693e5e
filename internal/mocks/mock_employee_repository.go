package mocks

import (
	"context"

	"github.com/Dilshan221/bakery-management/domain"
)

// MockEmployeeRepository implements domain.EmployeeRepository for testing
type MockEmployeeRepository struct {
	CreateFunc                func(ctx context.Context, employee *domain.Employee) error
	ListFunc                  func(ctx context.Context) ([]*domain.Employee, error)
	FindByIDFunc              func(ctx context.Context, id uint) (*domain.Employee, error)
	FindByIDWithChallengeFunc func(ctx context.Context, id uint) (*domain.Employee, error)
	FindByEmailFunc           func(ctx context.Context, email string) (*domain.Employee, error)
	UpdateFunc                func(ctx context.Context, employee *domain.Employee) error
	DeleteFunc                func(ctx context.Context, id uint) error
	AdoptPhoneFunc            func(ctx context.Context, id uint, phone string) error
	StoreChallengeFunc        func(ctx context.Context, id uint, ch domain.OTPChallenge) error
	BumpChallengeAttemptsFunc func(ctx context.Context, id uint, code string, fromAttempts int) (bool, error)
	ClearChallengeFunc        func(ctx context.Context, id uint, markVerified bool) error
}

// NewMockEmployeeRepository creates a new MockEmployeeRepository with default behaviors
func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{}
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, employee)
	}
	return nil
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uint) (*domain.Employee, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) FindByIDWithChallenge(ctx context.Context, id uint) (*domain.Employee, error) {
	if m.FindByIDWithChallengeFunc != nil {
		return m.FindByIDWithChallengeFunc(ctx, id)
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, employee)
	}
	return nil
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockEmployeeRepository) AdoptPhone(ctx context.Context, id uint, phone string) error {
	if m.AdoptPhoneFunc != nil {
		return m.AdoptPhoneFunc(ctx, id, phone)
	}
	return nil
}

func (m *MockEmployeeRepository) StoreChallenge(ctx context.Context, id uint, ch domain.OTPChallenge) error {
	if m.StoreChallengeFunc != nil {
		return m.StoreChallengeFunc(ctx, id, ch)
	}
	return nil
}

func (m *MockEmployeeRepository) BumpChallengeAttempts(ctx context.Context, id uint, code string, fromAttempts int) (bool, error) {
	if m.BumpChallengeAttemptsFunc != nil {
		return m.BumpChallengeAttemptsFunc(ctx, id, code, fromAttempts)
	}
	return true, nil
}

func (m *MockEmployeeRepository) ClearChallenge(ctx context.Context, id uint, markVerified bool) error {
	if m.ClearChallengeFunc != nil {
		return m.ClearChallengeFunc(ctx, id, markVerified)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.EmployeeRepository = (*MockEmployeeRepository)(nil)
