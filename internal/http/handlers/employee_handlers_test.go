package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Dilshan221/bakery-management/domain"
	"github.com/Dilshan221/bakery-management/internal/mocks"
)

func setupEmployeeRouter(employeeRepo *mocks.MockEmployeeRepository, otpSvc *mocks.MockOTPService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEmployeeHandlers(employeeRepo, otpSvc)

	router := gin.New()
	router.POST("/api/employee/save", h.Create)
	router.GET("/api/employee", h.List)
	router.PUT("/api/employee/update/:id", h.Update)
	router.DELETE("/api/employee/delete/:id", h.Delete)
	router.POST("/api/employee/:id/otp/send", h.SendOTP)
	router.POST("/api/employee/:id/otp/verify", h.VerifyOTP)
	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestEmployeeHandlers_Create(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    EmployeeRequest
		setupMocks     func(*mocks.MockEmployeeRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful creation",
			requestBody: EmployeeRequest{
				Name:  "Nadeesha Perera",
				Email: "Nadeesha@Example.com",
				Phone: "+94771234567",
			},
			setupMocks: func(employeeRepo *mocks.MockEmployeeRepository) {
				employeeRepo.CreateFunc = func(ctx context.Context, employee *domain.Employee) error {
					if employee.Email != "nadeesha@example.com" {
						t.Errorf("expected lowercased email, got %q", employee.Email)
					}
					employee.ID = 1
					return nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			requestBody:    EmployeeRequest{Email: "a@example.com"},
			setupMocks:     func(employeeRepo *mocks.MockEmployeeRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "name and email are required",
		},
		{
			name: "invalid email",
			requestBody: EmployeeRequest{
				Name:  "Nadeesha Perera",
				Email: "not-an-email",
			},
			setupMocks:     func(employeeRepo *mocks.MockEmployeeRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid email format",
		},
		{
			name: "duplicate email",
			requestBody: EmployeeRequest{
				Name:  "Nadeesha Perera",
				Email: "nadeesha@example.com",
			},
			setupMocks: func(employeeRepo *mocks.MockEmployeeRepository) {
				employeeRepo.CreateFunc = func(ctx context.Context, employee *domain.Employee) error {
					return domain.ErrEmailTaken
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Email is already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			employeeRepo := mocks.NewMockEmployeeRepository()
			otpSvc := mocks.NewMockOTPService()
			tt.setupMocks(employeeRepo)
			router := setupEmployeeRouter(employeeRepo, otpSvc)

			w := performJSON(t, router, http.MethodPost, "/api/employee/save", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedMsg != "" {
				body := decodeBody(t, w)
				if body["message"] != tt.expectedMsg {
					t.Errorf("expected message %q, got %v", tt.expectedMsg, body["message"])
				}
			}
		})
	}
}

func TestEmployeeHandlers_Create_SanitizesPayout(t *testing.T) {
	employeeRepo := mocks.NewMockEmployeeRepository()
	var captured *domain.Employee
	employeeRepo.CreateFunc = func(ctx context.Context, employee *domain.Employee) error {
		captured = employee
		employee.ID = 1
		return nil
	}
	router := setupEmployeeRouter(employeeRepo, mocks.NewMockOTPService())

	req := EmployeeRequest{
		Name:  "Nadeesha Perera",
		Email: "nadeesha@example.com",
	}
	req.Payout.MethodPreferred = "crypto"
	req.Payout.Bank.AccountNumberLast4 = "1234-5678-9012"
	req.Payout.Card.Last4 = "4242 4242 4242 4242"

	w := performJSON(t, router, http.MethodPost, "/api/employee/save", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if captured.Payout.MethodPreferred != "" {
		t.Errorf("unknown payout method must be dropped, got %q", captured.Payout.MethodPreferred)
	}
	if captured.Payout.Bank.AccountNumberLast4 != "9012" {
		t.Errorf("expected bank last4 9012, got %q", captured.Payout.Bank.AccountNumberLast4)
	}
	if captured.Payout.Card.Last4 != "4242" {
		t.Errorf("expected card last4 4242, got %q", captured.Payout.Card.Last4)
	}
}

func TestEmployeeHandlers_Update_RequiresNameAndEmail(t *testing.T) {
	tests := []struct {
		name        string
		requestBody EmployeeRequest
	}{
		{
			name:        "body with neither name nor email",
			requestBody: EmployeeRequest{Position: "head baker"},
		},
		{
			name:        "missing email",
			requestBody: EmployeeRequest{Name: "Nadeesha Perera"},
		},
		{
			name:        "missing name",
			requestBody: EmployeeRequest{Email: "nadeesha@example.com"},
		},
		{
			name:        "whitespace-only name",
			requestBody: EmployeeRequest{Name: "   ", Email: "nadeesha@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			employeeRepo := mocks.NewMockEmployeeRepository()
			employeeRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Employee, error) {
				return &domain.Employee{
					ID:    1,
					Name:  "Nadeesha Perera",
					Email: "nadeesha@example.com",
				}, nil
			}
			employeeRepo.UpdateFunc = func(ctx context.Context, employee *domain.Employee) error {
				t.Errorf("update must not be persisted, got name=%q email=%q", employee.Name, employee.Email)
				return nil
			}
			router := setupEmployeeRouter(employeeRepo, mocks.NewMockOTPService())

			w := performJSON(t, router, http.MethodPut, "/api/employee/update/1", tt.requestBody)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if body["message"] != "name and email are required" {
				t.Errorf("unexpected message %v", body["message"])
			}
		})
	}
}

func TestEmployeeHandlers_Update_PhoneChangeResetsVerification(t *testing.T) {
	employeeRepo := mocks.NewMockEmployeeRepository()
	employeeRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Employee, error) {
		return &domain.Employee{
			ID:            1,
			Name:          "Nadeesha Perera",
			Email:         "nadeesha@example.com",
			Phone:         "+94771234567",
			PhoneVerified: true,
		}, nil
	}

	var updated *domain.Employee
	employeeRepo.UpdateFunc = func(ctx context.Context, employee *domain.Employee) error {
		updated = employee
		return nil
	}
	cleared := false
	employeeRepo.ClearChallengeFunc = func(ctx context.Context, id uint, markVerified bool) error {
		cleared = true
		if markVerified {
			t.Error("phone change must not mark verified")
		}
		return nil
	}
	router := setupEmployeeRouter(employeeRepo, mocks.NewMockOTPService())

	req := EmployeeRequest{
		Name:  "Nadeesha Perera",
		Email: "nadeesha@example.com",
		Phone: "+94770000000",
	}
	w := performJSON(t, router, http.MethodPut, "/api/employee/update/1", req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if updated == nil {
		t.Fatal("update was not persisted")
	}
	if updated.PhoneVerified {
		t.Error("phone change must reset the verified flag")
	}
	if !cleared {
		t.Error("phone change must clear any pending challenge")
	}
}

func TestEmployeeHandlers_Update_SamePhoneKeepsVerification(t *testing.T) {
	employeeRepo := mocks.NewMockEmployeeRepository()
	employeeRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Employee, error) {
		return &domain.Employee{
			ID:            1,
			Name:          "Nadeesha Perera",
			Email:         "nadeesha@example.com",
			Phone:         "+94771234567",
			PhoneVerified: true,
		}, nil
	}

	var updated *domain.Employee
	employeeRepo.UpdateFunc = func(ctx context.Context, employee *domain.Employee) error {
		updated = employee
		return nil
	}
	employeeRepo.ClearChallengeFunc = func(ctx context.Context, id uint, markVerified bool) error {
		t.Error("unchanged phone must not clear the challenge")
		return nil
	}
	router := setupEmployeeRouter(employeeRepo, mocks.NewMockOTPService())

	req := EmployeeRequest{
		Name:     "Nadeesha Perera",
		Email:    "nadeesha@example.com",
		Phone:    "+94771234567",
		Position: "head baker",
	}
	w := performJSON(t, router, http.MethodPut, "/api/employee/update/1", req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !updated.PhoneVerified {
		t.Error("verified flag must survive when the phone is unchanged")
	}
}

func TestEmployeeHandlers_SendOTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockOTPService)
		expectedStatus int
		validateBody   func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "development path returns the code",
			setupMocks: func(otpSvc *mocks.MockOTPService) {
				otpSvc.IssueFunc = func(ctx context.Context, employeeID uint, phone string) (*domain.OTPIssueResult, error) {
					return &domain.OTPIssueResult{Phone: "+94771234567", DevCode: "482913"}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, w *httptest.ResponseRecorder) {
				body := decodeBody(t, w)
				if body["devCode"] != "482913" {
					t.Errorf("expected devCode in body, got %v", body)
				}
			},
		},
		{
			name: "live path returns no content",
			setupMocks: func(otpSvc *mocks.MockOTPService) {
				otpSvc.IssueFunc = func(ctx context.Context, employeeID uint, phone string) (*domain.OTPIssueResult, error) {
					return &domain.OTPIssueResult{Phone: "+94771234567", Delivered: true}, nil
				}
			},
			expectedStatus: http.StatusNoContent,
			validateBody: func(t *testing.T, w *httptest.ResponseRecorder) {
				if w.Body.Len() != 0 {
					t.Errorf("live path must not leak a body, got %q", w.Body.String())
				}
			},
		},
		{
			name: "unknown employee",
			setupMocks: func(otpSvc *mocks.MockOTPService) {
				otpSvc.IssueFunc = func(ctx context.Context, employeeID uint, phone string) (*domain.OTPIssueResult, error) {
					return nil, domain.ErrEmployeeNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "no phone available",
			setupMocks: func(otpSvc *mocks.MockOTPService) {
				otpSvc.IssueFunc = func(ctx context.Context, employeeID uint, phone string) (*domain.OTPIssueResult, error) {
					return nil, domain.ErrPhoneRequired
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "dispatch failure",
			setupMocks: func(otpSvc *mocks.MockOTPService) {
				otpSvc.IssueFunc = func(ctx context.Context, employeeID uint, phone string) (*domain.OTPIssueResult, error) {
					return nil, domain.ErrSMSDispatch
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otpSvc := mocks.NewMockOTPService()
			tt.setupMocks(otpSvc)
			router := setupEmployeeRouter(mocks.NewMockEmployeeRepository(), otpSvc)

			w := performJSON(t, router, http.MethodPost, "/api/employee/1/otp/send", OTPSendRequest{Phone: "+94771234567"})

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateBody != nil {
				tt.validateBody(t, w)
			}
		})
	}
}

func TestEmployeeHandlers_VerifyOTP(t *testing.T) {
	tests := []struct {
		name           string
		verifyError    error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "successful verification",
			verifyError:    nil,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown employee",
			verifyError:    domain.ErrEmployeeNotFound,
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Employee not found",
		},
		{
			name:           "no challenge pending",
			verifyError:    domain.ErrOTPNotPending,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "No OTP pending",
		},
		{
			name:           "wrong code",
			verifyError:    domain.ErrOTPInvalid,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid code",
		},
		{
			name:           "expired challenge",
			verifyError:    domain.ErrOTPExpired,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "OTP expired",
		},
		{
			name:           "attempt ceiling",
			verifyError:    domain.ErrOTPMaxAttempts,
			expectedStatus: http.StatusTooManyRequests,
			expectedMsg:    "Too many attempts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otpSvc := mocks.NewMockOTPService()
			otpSvc.VerifyFunc = func(ctx context.Context, employeeID uint, code string) error {
				return tt.verifyError
			}
			router := setupEmployeeRouter(mocks.NewMockEmployeeRepository(), otpSvc)

			w := performJSON(t, router, http.MethodPost, "/api/employee/1/otp/verify", OTPVerifyRequest{Code: "482913"})

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedMsg != "" {
				body := decodeBody(t, w)
				if body["message"] != tt.expectedMsg {
					t.Errorf("expected message %q, got %v", tt.expectedMsg, body["message"])
				}
			} else if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				if body["ok"] != true {
					t.Errorf("expected ok true, got %v", body)
				}
			}
		})
	}
}

func TestEmployeeHandlers_InvalidID(t *testing.T) {
	router := setupEmployeeRouter(mocks.NewMockEmployeeRepository(), mocks.NewMockOTPService())

	w := performJSON(t, router, http.MethodPost, "/api/employee/abc/otp/send", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}
}
