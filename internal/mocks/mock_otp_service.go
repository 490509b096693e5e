package mocks

import (
	"context"

	"github.com/Dilshan221/bakery-management/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc  func(ctx context.Context, employeeID uint, phone string) (*domain.OTPIssueResult, error)
	VerifyFunc func(ctx context.Context, employeeID uint, code string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, employeeID uint, phone string) (*domain.OTPIssueResult, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, employeeID, phone)
	}
	return &domain.OTPIssueResult{Phone: phone, DevCode: "123456"}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, employeeID uint, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, employeeID, code)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
