package domain

import (
	"context"
	"time"
)

// ProductRepository defines product data access operations
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	List(ctx context.Context) ([]*Product, error)
	FindByID(ctx context.Context, id uint) (*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) (*Product, error)
}

// EmployeeRepository defines employee data access operations.
//
// Default reads never populate the OTP challenge; callers that need it must
// use FindByIDWithChallenge. The challenge mutation methods are single
// conditional updates so concurrent verification attempts cannot
// double-count or resurrect a consumed challenge.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	List(ctx context.Context) ([]*Employee, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindByIDWithChallenge(ctx context.Context, id uint) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id uint) error

	// AdoptPhone sets the employee's phone and resets the verified flag.
	AdoptPhone(ctx context.Context, id uint, phone string) error
	// StoreChallenge replaces any prior challenge with ch.
	StoreChallenge(ctx context.Context, id uint, ch OTPChallenge) error
	// BumpChallengeAttempts moves the attempt counter from fromAttempts to
	// fromAttempts+1, guarded on the stored code being unchanged. Returns
	// false when the swap lost to a concurrent mutation.
	BumpChallengeAttempts(ctx context.Context, id uint, code string, fromAttempts int) (bool, error)
	// ClearChallenge removes the stored challenge; when markVerified is set
	// the phone-verified flag is raised in the same update.
	ClearChallenge(ctx context.Context, id uint, markVerified bool) error
}

// AttendanceRepository defines attendance data access operations
type AttendanceRepository interface {
	Create(ctx context.Context, att *Attendance) error
	List(ctx context.Context) ([]*Attendance, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]*Attendance, error)
	FindByID(ctx context.Context, id uint) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID uint, day time.Time) (*Attendance, error)
	Update(ctx context.Context, att *Attendance) error
	Delete(ctx context.Context, id uint) error
}

// AccountRepository defines account data access operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	List(ctx context.Context) ([]*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id uint) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// OTPService defines the phone verification flow bound to employee records
type OTPService interface {
	// Issue creates, stores and dispatches a fresh challenge. phone may be
	// empty, in which case the employee's stored phone is used.
	Issue(ctx context.Context, employeeID uint, phone string) (*OTPIssueResult, error)
	// Verify resolves the pending challenge against a submitted code.
	Verify(ctx context.Context, employeeID uint, code string) error
}

// AccountService defines account business logic
type AccountService interface {
	Register(ctx context.Context, account *Account, password string) (*Account, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetProfile(ctx context.Context, accountID uint) (*Account, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(accountID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(accountID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines outbound message dispatch
type NotificationService interface {
	SendSMS(to, message string) error
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	AccountID uint   `json:"account_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
