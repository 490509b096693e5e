package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dilshan221/bakery-management/domain"
	"github.com/Dilshan221/bakery-management/internal/mocks"
)

func createAccountServiceForTest(t *testing.T) (domain.AccountService, *mocks.MockAccountRepository, *mocks.MockSessionRepository) {
	t.Helper()

	accountRepo := mocks.NewMockAccountRepository()
	sessionRepo := mocks.NewMockSessionRepository()
	passwordSvc := mocks.NewMockPasswordService()
	tokenSvc := mocks.NewMockTokenService()

	svc := NewAccountService(accountRepo, sessionRepo, passwordSvc, tokenSvc, 24*time.Hour, 15*time.Minute)
	return svc, accountRepo, sessionRepo
}

func createValidAccount(t *testing.T) *domain.Account {
	t.Helper()

	return &domain.Account{
		ID:           1,
		Firstname:    "Sanduni",
		Lastname:     "Fernando",
		Email:        "sanduni@example.com",
		PasswordHash: "hashed:correct-password",
		Role:         domain.RoleCustomer,
		IsActive:     true,
	}
}

func TestAccountServiceImpl_Register(t *testing.T) {
	tests := []struct {
		name            string
		account         *domain.Account
		password        string
		setupMocks      func(*mocks.MockAccountRepository)
		expectedError   error
		validateAccount func(t *testing.T, account *domain.Account)
	}{
		{
			name: "successful registration",
			account: &domain.Account{
				Firstname: "Sanduni",
				Lastname:  "Fernando",
				Email:     "sanduni@example.com",
			},
			password:   "securepassword123",
			setupMocks: func(accountRepo *mocks.MockAccountRepository) {},
			validateAccount: func(t *testing.T, account *domain.Account) {
				if account == nil {
					t.Fatal("account is nil")
				}
				if account.Role != domain.RoleCustomer {
					t.Errorf("expected default role %s, got %s", domain.RoleCustomer, account.Role)
				}
				if !account.IsActive {
					t.Error("expected account to be active")
				}
				if account.PasswordHash != "hashed:securepassword123" {
					t.Errorf("unexpected password hash %s", account.PasswordHash)
				}
			},
		},
		{
			name: "email already registered",
			account: &domain.Account{
				Email: "sanduni@example.com",
			},
			password: "password123",
			setupMocks: func(accountRepo *mocks.MockAccountRepository) {
				accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
					return createValidAccount(t), nil
				}
			},
			expectedError: domain.ErrEmailTaken,
		},
		{
			name: "explicit role preserved",
			account: &domain.Account{
				Email: "admin@example.com",
				Role:  domain.RoleAdmin,
			},
			password:   "password123",
			setupMocks: func(accountRepo *mocks.MockAccountRepository) {},
			validateAccount: func(t *testing.T, account *domain.Account) {
				if account.Role != domain.RoleAdmin {
					t.Errorf("expected role %s, got %s", domain.RoleAdmin, account.Role)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accountRepo, _ := createAccountServiceForTest(t)
			tt.setupMocks(accountRepo)

			account, err := svc.Register(context.Background(), tt.account, tt.password)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validateAccount != nil {
				tt.validateAccount(t, account)
			}
		})
	}
}

func TestAccountServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockAccountRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "sanduni@example.com",
			password: "correct-password",
			setupMocks: func(accountRepo *mocks.MockAccountRepository) {
				accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
					return createValidAccount(t), nil
				}
			},
		},
		{
			name:          "unknown email",
			email:         "nobody@example.com",
			password:      "password",
			setupMocks:    func(accountRepo *mocks.MockAccountRepository) {},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "sanduni@example.com",
			password: "wrong-password",
			setupMocks: func(accountRepo *mocks.MockAccountRepository) {
				accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
					return createValidAccount(t), nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "inactive account",
			email:    "sanduni@example.com",
			password: "correct-password",
			setupMocks: func(accountRepo *mocks.MockAccountRepository) {
				accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
					account := createValidAccount(t)
					account.IsActive = false
					return account, nil
				}
			},
			expectedError: domain.ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accountRepo, sessionRepo := createAccountServiceForTest(t)
			tt.setupMocks(accountRepo)

			result, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.AccessToken == "" || result.RefreshToken == "" {
				t.Error("expected both tokens to be issued")
			}
			if result.SessionID == "" {
				t.Fatal("expected a session ID")
			}
			if _, err := sessionRepo.FindByID(context.Background(), result.SessionID); err != nil {
				t.Errorf("session not persisted: %v", err)
			}
		})
	}
}

func TestAccountServiceImpl_RefreshToken(t *testing.T) {
	svc, accountRepo, sessionRepo := createAccountServiceForTest(t)
	accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return createValidAccount(t), nil
	}
	accountRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Account, error) {
		return createValidAccount(t), nil
	}

	login, err := svc.Login(context.Background(), "sanduni@example.com", "correct-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	impl := svc.(*AccountServiceImpl)
	impl.tokenSvc.(*mocks.MockTokenService).ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{AccountID: 1, Role: domain.RoleCustomer, SessionID: login.SessionID}, nil
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.SessionID != login.SessionID {
		t.Errorf("refresh must keep the session, got %s", refreshed.SessionID)
	}

	// An expired session is rejected even with a valid token.
	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: sessionID, AccountID: 1, ExpiresAt: time.Now().Add(-time.Minute)}, nil
	}
	if _, err := svc.RefreshToken(context.Background(), login.RefreshToken); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestAccountServiceImpl_Logout(t *testing.T) {
	svc, accountRepo, sessionRepo := createAccountServiceForTest(t)
	accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return createValidAccount(t), nil
	}

	login, err := svc.Login(context.Background(), "sanduni@example.com", "correct-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), login.SessionID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := sessionRepo.FindByID(context.Background(), login.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}
