package mocks

import (
	"context"
	"time"

	"github.com/Dilshan221/bakery-management/domain"
)

// MockAttendanceRepository implements domain.AttendanceRepository for testing
type MockAttendanceRepository struct {
	CreateFunc                func(ctx context.Context, att *domain.Attendance) error
	ListFunc                  func(ctx context.Context) ([]*domain.Attendance, error)
	ListByEmployeeFunc        func(ctx context.Context, employeeID uint) ([]*domain.Attendance, error)
	FindByIDFunc              func(ctx context.Context, id uint) (*domain.Attendance, error)
	FindByEmployeeAndDateFunc func(ctx context.Context, employeeID uint, day time.Time) (*domain.Attendance, error)
	UpdateFunc                func(ctx context.Context, att *domain.Attendance) error
	DeleteFunc                func(ctx context.Context, id uint) error
}

// NewMockAttendanceRepository creates a new MockAttendanceRepository with default behaviors
func NewMockAttendanceRepository() *MockAttendanceRepository {
	return &MockAttendanceRepository{}
}

func (m *MockAttendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, att)
	}
	return nil
}

func (m *MockAttendanceRepository) List(ctx context.Context) ([]*domain.Attendance, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockAttendanceRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]*domain.Attendance, error) {
	if m.ListByEmployeeFunc != nil {
		return m.ListByEmployeeFunc(ctx, employeeID)
	}
	return nil, nil
}

func (m *MockAttendanceRepository) FindByID(ctx context.Context, id uint) (*domain.Attendance, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAttendanceNotFound
}

func (m *MockAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID uint, day time.Time) (*domain.Attendance, error) {
	if m.FindByEmployeeAndDateFunc != nil {
		return m.FindByEmployeeAndDateFunc(ctx, employeeID, day)
	}
	return nil, domain.ErrAttendanceNotFound
}

func (m *MockAttendanceRepository) Update(ctx context.Context, att *domain.Attendance) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, att)
	}
	return nil
}

func (m *MockAttendanceRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AttendanceRepository = (*MockAttendanceRepository)(nil)
