package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dilshan221/bakery-management/domain"
)

// EmployeeHandlers handles employee HTTP requests
type EmployeeHandlers struct {
	employeeRepo domain.EmployeeRepository
	otpSvc       domain.OTPService
}

// NewEmployeeHandlers creates new employee handlers
func NewEmployeeHandlers(employeeRepo domain.EmployeeRepository, otpSvc domain.OTPService) *EmployeeHandlers {
	return &EmployeeHandlers{
		employeeRepo: employeeRepo,
		otpSvc:       otpSvc,
	}
}

// EmployeeRequest represents an employee create/update payload
type EmployeeRequest struct {
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Address    string        `json:"address"`
	Department string        `json:"department"`
	Position   string        `json:"position"`
	Salary     float64       `json:"salary"`
	Payout     PayoutRequest `json:"payout"`
}

// PayoutRequest represents the payout section of an employee payload
type PayoutRequest struct {
	MethodPreferred string `json:"method_preferred"`
	Bank            struct {
		AccountName        string `json:"account_name"`
		BankName           string `json:"bank_name"`
		Branch             string `json:"branch"`
		AccountNumberLast4 string `json:"account_number_last4"`
		Swift              string `json:"swift"`
	} `json:"bank"`
	Card struct {
		Brand       string `json:"brand"`
		Last4       string `json:"last4"`
		ExpMonth    int    `json:"exp_month"`
		ExpYear     int    `json:"exp_year"`
		Token       string `json:"token"`
		BillingName string `json:"billing_name"`
	} `json:"card"`
	ConsentSaveCard bool `json:"consent_save_card"`
}

// OTPSendRequest represents an OTP issuance request
type OTPSendRequest struct {
	Phone string `json:"phone"`
}

// OTPVerifyRequest represents an OTP verification request
type OTPVerifyRequest struct {
	Code string `json:"code"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

func emailLooksValid(s string) bool {
	return emailPattern.MatchString(strings.ToLower(strings.TrimSpace(s)))
}

var payoutMethods = map[string]bool{"": true, "bank": true, "card": true, "finance_manager": true}

var nonDigits = regexp.MustCompile(`[^\d]`)

// digitsLast4 strips non-digits and keeps the trailing four
func digitsLast4(s string) string {
	d := nonDigits.ReplaceAllString(s, "")
	if len(d) > 4 {
		d = d[len(d)-4:]
	}
	return d
}

// normalize maps a request payload onto a domain employee
func (req *EmployeeRequest) normalize() domain.Employee {
	emp := domain.Employee{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		Salary:     req.Salary,
	}
	if emp.Salary < 0 {
		emp.Salary = 0
	}

	method := req.Payout.MethodPreferred
	if !payoutMethods[method] {
		method = ""
	}
	emp.Payout = domain.Payout{
		MethodPreferred: method,
		Bank: domain.BankDetails{
			AccountName:        strings.TrimSpace(req.Payout.Bank.AccountName),
			BankName:           strings.TrimSpace(req.Payout.Bank.BankName),
			Branch:             strings.TrimSpace(req.Payout.Bank.Branch),
			AccountNumberLast4: digitsLast4(req.Payout.Bank.AccountNumberLast4),
			Swift:              strings.TrimSpace(req.Payout.Bank.Swift),
		},
		Card: domain.CardDetails{
			Brand:       strings.TrimSpace(req.Payout.Card.Brand),
			Last4:       digitsLast4(req.Payout.Card.Last4),
			ExpMonth:    req.Payout.Card.ExpMonth,
			ExpYear:     req.Payout.Card.ExpYear,
			Token:       strings.TrimSpace(req.Payout.Card.Token),
			BillingName: strings.TrimSpace(req.Payout.Card.BillingName),
		},
		ConsentSaveCard: req.Payout.ConsentSaveCard,
	}

	return emp
}

func employeeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid employee id"})
		return 0, false
	}
	return uint(id), true
}

// Create handles employee creation
func (h *EmployeeHandlers) Create(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and email are required"})
		return
	}
	if !emailLooksValid(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email format"})
		return
	}

	emp := req.normalize()
	if err := h.employeeRepo.Create(c.Request.Context(), &emp); err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error while creating employee"})
		return
	}

	c.JSON(http.StatusCreated, emp)
}

// List handles listing all employees, newest first
func (h *EmployeeHandlers) List(c *gin.Context) {
	employees, err := h.employeeRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error while fetching employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// Update handles employee updates. A phone change invalidates any pending
// challenge and resets the verified flag.
func (h *EmployeeHandlers) Update(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// Name and email stay required on update; a save may never blank them.
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and email are required"})
		return
	}
	if !emailLooksValid(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email format"})
		return
	}

	emp, err := h.employeeRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrEmployeeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error while updating employee"})
		return
	}

	if nextEmail := strings.ToLower(strings.TrimSpace(req.Email)); nextEmail != emp.Email {
		if _, err := h.employeeRepo.FindByEmail(c.Request.Context(), nextEmail); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already in use"})
			return
		}
	}

	prevPhone := emp.Phone
	next := req.normalize()
	next.ID = emp.ID
	next.PhoneVerified = emp.PhoneVerified
	next.CreatedAt = emp.CreatedAt

	phoneChanged := next.Phone != "" && next.Phone != prevPhone
	if phoneChanged {
		next.PhoneVerified = false
	}

	if err := h.employeeRepo.Update(c.Request.Context(), &next); err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error while updating employee"})
		return
	}

	if phoneChanged {
		if err := h.employeeRepo.ClearChallenge(c.Request.Context(), id, false); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error while updating employee"})
			return
		}
	}

	c.JSON(http.StatusOK, next)
}

// Delete handles employee deletion
func (h *EmployeeHandlers) Delete(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	if err := h.employeeRepo.Delete(c.Request.Context(), id); err != nil {
		if err == domain.ErrEmployeeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error while deleting employee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

// SendOTP handles challenge issuance for an employee's phone
func (h *EmployeeHandlers) SendOTP(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	var req OTPSendRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	result, err := h.otpSvc.Issue(c.Request.Context(), id, req.Phone)
	if err != nil {
		switch err {
		case domain.ErrEmployeeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		case domain.ErrPhoneRequired:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone is required to send OTP"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
		}
		return
	}

	if result.Delivered {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent (dev)", "devCode": result.DevCode})
}

// VerifyOTP handles challenge resolution for an employee's phone
func (h *EmployeeHandlers) VerifyOTP(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	var req OTPVerifyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	if err := h.otpSvc.Verify(c.Request.Context(), id, req.Code); err != nil {
		switch err {
		case domain.ErrEmployeeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		case domain.ErrOTPNotPending:
			c.JSON(http.StatusBadRequest, gin.H{"message": "No OTP pending"})
		case domain.ErrOTPInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid code"})
		case domain.ErrOTPExpired:
			c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired"})
		case domain.ErrOTPMaxAttempts:
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many attempts"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify OTP"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
