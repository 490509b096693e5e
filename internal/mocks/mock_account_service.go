package mocks

import (
	"context"

	"github.com/Dilshan221/bakery-management/domain"
)

// MockAccountService implements domain.AccountService for testing
type MockAccountService struct {
	RegisterFunc     func(ctx context.Context, account *domain.Account, password string) (*domain.Account, error)
	LoginFunc        func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc       func(ctx context.Context, sessionID string) error
	GetProfileFunc   func(ctx context.Context, accountID uint) (*domain.Account, error)
}

// NewMockAccountService creates a new MockAccountService with default behaviors
func NewMockAccountService() *MockAccountService {
	return &MockAccountService{}
}

func (m *MockAccountService) Register(ctx context.Context, account *domain.Account, password string) (*domain.Account, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, account, password)
	}
	account.ID = 1
	account.Role = domain.RoleCustomer
	account.IsActive = true
	return account, nil
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.AuthResult{
		Account: &domain.Account{
			ID:       1,
			Email:    email,
			Role:     domain.RoleCustomer,
			IsActive: true,
		},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		SessionID:    "session-1",
		ExpiresIn:    900,
	}, nil
}

func (m *MockAccountService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return &domain.AuthResult{
		Account:      &domain.Account{ID: 1, Role: domain.RoleCustomer, IsActive: true},
		AccessToken:  "access-token",
		RefreshToken: refreshToken,
		SessionID:    "session-1",
		ExpiresIn:    900,
	}, nil
}

func (m *MockAccountService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAccountService) GetProfile(ctx context.Context, accountID uint) (*domain.Account, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, accountID)
	}
	return nil, domain.ErrAccountNotFound
}

// Compile-time interface compliance verification
var _ domain.AccountService = (*MockAccountService)(nil)
