package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dilshan221/bakery-management/domain"
	"github.com/Dilshan221/bakery-management/internal/mocks"
)

func setupAttendanceRouter(attendanceRepo *mocks.MockAttendanceRepository, employeeRepo *mocks.MockEmployeeRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAttendanceHandlers(attendanceRepo, employeeRepo)

	router := gin.New()
	router.POST("/api/attendance", h.Mark)
	router.GET("/api/attendance", h.List)
	router.GET("/api/attendance/employee/:employeeId", h.ListByEmployee)
	return router
}

func knownEmployee(employeeRepo *mocks.MockEmployeeRepository) {
	employeeRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Employee, error) {
		return &domain.Employee{ID: id, Name: "Nadeesha Perera"}, nil
	}
}

func TestAttendanceHandlers_Mark(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    AttendanceRequest
		setupMocks     func(*mocks.MockAttendanceRepository, *mocks.MockEmployeeRepository)
		expectedStatus int
		validate       func(t *testing.T, created *domain.Attendance)
	}{
		{
			name: "successful mark with date truncated to midnight UTC",
			requestBody: AttendanceRequest{
				EmployeeID: 1,
				Date:       "2024-07-15T09:23:45Z",
				CheckIn:    "08:00",
				Status:     domain.AttendanceLate,
			},
			setupMocks: func(attendanceRepo *mocks.MockAttendanceRepository, employeeRepo *mocks.MockEmployeeRepository) {
				knownEmployee(employeeRepo)
			},
			expectedStatus: http.StatusCreated,
			validate: func(t *testing.T, created *domain.Attendance) {
				want := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
				if !created.Date.Equal(want) {
					t.Errorf("expected date %v, got %v", want, created.Date)
				}
				if created.Status != domain.AttendanceLate {
					t.Errorf("expected status late, got %q", created.Status)
				}
			},
		},
		{
			name: "status defaults to present",
			requestBody: AttendanceRequest{
				EmployeeID: 1,
				Date:       "2024-07-15",
			},
			setupMocks: func(attendanceRepo *mocks.MockAttendanceRepository, employeeRepo *mocks.MockEmployeeRepository) {
				knownEmployee(employeeRepo)
			},
			expectedStatus: http.StatusCreated,
			validate: func(t *testing.T, created *domain.Attendance) {
				if created.Status != domain.AttendancePresent {
					t.Errorf("expected default status present, got %q", created.Status)
				}
			},
		},
		{
			name:           "missing employee id",
			requestBody:    AttendanceRequest{Date: "2024-07-15"},
			setupMocks:     func(attendanceRepo *mocks.MockAttendanceRepository, employeeRepo *mocks.MockEmployeeRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown employee",
			requestBody:    AttendanceRequest{EmployeeID: 99, Date: "2024-07-15"},
			setupMocks:     func(attendanceRepo *mocks.MockAttendanceRepository, employeeRepo *mocks.MockEmployeeRepository) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "duplicate day conflicts",
			requestBody: AttendanceRequest{
				EmployeeID: 1,
				Date:       "2024-07-15",
			},
			setupMocks: func(attendanceRepo *mocks.MockAttendanceRepository, employeeRepo *mocks.MockEmployeeRepository) {
				knownEmployee(employeeRepo)
				attendanceRepo.CreateFunc = func(ctx context.Context, att *domain.Attendance) error {
					return domain.ErrAttendanceExists
				}
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attendanceRepo := mocks.NewMockAttendanceRepository()
			employeeRepo := mocks.NewMockEmployeeRepository()

			var created *domain.Attendance
			attendanceRepo.CreateFunc = func(ctx context.Context, att *domain.Attendance) error {
				created = att
				att.ID = 1
				return nil
			}
			tt.setupMocks(attendanceRepo, employeeRepo)
			router := setupAttendanceRouter(attendanceRepo, employeeRepo)

			w := performJSON(t, router, http.MethodPost, "/api/attendance", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validate != nil {
				if created == nil {
					t.Fatal("attendance was not created")
				}
				tt.validate(t, created)
			}
		})
	}
}

func TestAttendanceHandlers_ListByEmployee(t *testing.T) {
	attendanceRepo := mocks.NewMockAttendanceRepository()
	attendanceRepo.ListByEmployeeFunc = func(ctx context.Context, employeeID uint) ([]*domain.Attendance, error) {
		return []*domain.Attendance{
			{ID: 1, EmployeeID: employeeID, Status: domain.AttendancePresent},
		}, nil
	}
	router := setupAttendanceRouter(attendanceRepo, mocks.NewMockEmployeeRepository())

	w := performJSON(t, router, http.MethodGet, "/api/attendance/employee/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = performJSON(t, router, http.MethodGet, "/api/attendance/employee/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}
}
